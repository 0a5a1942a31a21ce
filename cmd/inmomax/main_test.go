package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmomax/internal/chatbot"
	"inmomax/internal/config"
	"inmomax/internal/handler"
	"inmomax/internal/mockdata"
	"inmomax/internal/repository"
	"inmomax/internal/service"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepository(mockdata.Properties())
	props := service.NewPropertyService(repo, config.CatalogConfig{
		DefaultLimit:        12,
		MaxLimit:            100,
		SimilarDefaultLimit: 4,
		SimilarMaxLimit:     10,
	})
	chat := service.NewChatService(chatbot.DefaultClassifier(), chatbot.NewStats(), nil, 500)

	r := gin.New()
	handler.RegisterRoutes(r,
		handler.NewHealthHandler(handler.BuildInfo{}, repo),
		handler.NewPropertyHandler(props),
		handler.NewChatHandler(chat),
	)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "dev")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	srv := newAPIServer(t)

	out, err := run(t, "", "propiedades", "--api", srv.URL, "--operacion", "venta", "--amenidad", "piscina")
	require.NoError(t, err)
	assert.Contains(t, out, "Filtros: ?operacion=venta&piscina=true")
	assert.Contains(t, out, "Mostrando 2 de 2 propiedades (página 1 de 1)")
	assert.Less(t, strings.Index(out, "#6"), strings.Index(out, "#1"))
}

func TestListCommand_Validation(t *testing.T) {
	srv := newAPIServer(t)

	_, err := run(t, "", "propiedades", "--api", srv.URL, "--habitaciones", "9")
	assert.ErrorContains(t, err, "habitaciones")

	_, err = run(t, "", "propiedades", "--api", srv.URL, "--amenidad", "helipuerto")
	assert.ErrorContains(t, err, "helipuerto")
}

func TestListCommand_FallsBackToMockData(t *testing.T) {
	out, err := run(t, "", "propiedades", "--api", "http://127.0.0.1:1", "--tipo", "casa")
	require.NoError(t, err)
	assert.Contains(t, out, "Filtros: ?tipo=casa")
	assert.Contains(t, out, "Mostrando 6 de 6 propiedades")
}

func TestFeaturedAndDetailCommands(t *testing.T) {
	srv := newAPIServer(t)

	out, err := run(t, "", "destacadas", "--api", srv.URL, "--limit", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "#6")
	assert.Contains(t, out, "#4")
	assert.NotContains(t, out, "#2")

	out, err = run(t, "", "propiedad", "3", "--api", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "#3 ")
	assert.Contains(t, out, "Agente: María González")

	_, err = run(t, "", "propiedad", "tres", "--api", srv.URL)
	assert.Error(t, err)
}

func TestChatCommand(t *testing.T) {
	out, err := run(t, "hola\n\nxyz123\nsalir\n", "chat", "--min-delay", "0", "--max-delay", "0")
	require.NoError(t, err)

	assert.Contains(t, out, chatbot.WelcomeMessage)
	assert.Contains(t, out, chatbot.QuickReplies[0])
	assert.Contains(t, out, "¡Hola! ¿Cómo estás? ¿En qué te puedo ayudar hoy?")
	assert.Contains(t, out, chatbot.DefaultFallback)
}
