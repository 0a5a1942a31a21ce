package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmomax/internal/chatbot"
	"inmomax/internal/model"
)

type intentLog struct {
	intents []string
}

func (l *intentLog) RecordIntent(intent string, _ float64) {
	l.intents = append(l.intents, intent)
}

func newChatService(rec IntentRecorder) *ChatService {
	classifier := chatbot.DefaultClassifier().WithPicker(func(int) int { return 0 })
	return NewChatService(classifier, chatbot.NewStats(), rec, 500)
}

func TestChatService_Reply(t *testing.T) {
	rec := &intentLog{}
	svc := newChatService(rec)
	user := "u-7"

	res, err := svc.Reply(context.Background(), model.ChatRequest{Message: "  ¿Tienen departamentos?  ", UserID: &user})
	require.NoError(t, err)
	assert.Equal(t, "propiedades", res.Intent)
	assert.Equal(t, chatbot.MatchedConfidence, res.Confidence)
	assert.Equal(t, "Tenemos una gran variedad de propiedades disponibles. ¿Buscas casa, departamento, local comercial o terreno?", res.Response)
	assert.Len(t, res.Suggestions, 3)
	assert.False(t, res.Timestamp.IsZero())
	assert.Equal(t, []string{"propiedades"}, rec.intents)
}

func TestChatService_ReplyDefault(t *testing.T) {
	svc := newChatService(nil)

	res, err := svc.Reply(context.Background(), model.ChatRequest{Message: "xyz123"})
	require.NoError(t, err)
	assert.Equal(t, chatbot.DefaultIntent, res.Intent)
	assert.Equal(t, chatbot.DefaultConfidence, res.Confidence)
}

func TestChatService_ReplyValidation(t *testing.T) {
	svc := newChatService(nil)

	_, err := svc.Reply(context.Background(), model.ChatRequest{Message: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Reply(context.Background(), model.ChatRequest{Message: strings.Repeat("á", 501)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorContains(t, err, "El mensaje no puede superar los 500 caracteres")

	_, err = svc.Reply(context.Background(), model.ChatRequest{Message: strings.Repeat("á", 500)})
	assert.NoError(t, err)
}

func TestChatService_Stats(t *testing.T) {
	svc := newChatService(nil)
	ctx := context.Background()

	for _, msg := range []string{"hola", "hola", "precio", "xyz"} {
		_, err := svc.Reply(ctx, model.ChatRequest{Message: msg})
		require.NoError(t, err)
	}

	stats := svc.Stats()
	assert.Equal(t, 4, stats.Processed)
	require.NotEmpty(t, stats.TopIntents)
	assert.Equal(t, model.IntentCount{Intent: "saludo", Count: 2}, stats.TopIntents[0])
	assert.Len(t, svc.Suggestions(), len(chatbot.FAQ))
}
