package chatbot

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstPick(int) int { return 0 }

func TestDefaultClassifier_Detect(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		message string
		want    string
	}{
		{"Hola, buenas tardes", "saludo"},
		{"Busco departamentos", "propiedades"},
		{"¿Cuánto sale?", "precios"},
		{"quiero alquilar", "alquiler"},
		{"me interesa comprar", "venta"},
		{"algo en Fisherton", "ubicacion"},
		{"pasame el teléfono", "contacto"},
		{"¿abren los sábados?", "horarios"},
		{"¿qué ofrecen?", "servicios"},
		{"necesito un crédito hipotecario", "financiacion"},
		{"quiero tasar mi casa", "propiedades"},
		{"tasación", "tasacion"},
		{"chau", "despedida"},
		{"xyz123", DefaultIntent},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Detect(tt.message))
		})
	}
}

func TestClassify_Matched(t *testing.T) {
	c := DefaultClassifier().WithPicker(firstPick)

	got := c.Classify("HOLA")
	assert.Equal(t, "saludo", got.Intent)
	assert.Equal(t, "¡Hola! Bienvenido a InmoMax. ¿En qué puedo ayudarte hoy?", got.Response)
	assert.Equal(t, MatchedConfidence, got.Confidence)
	assert.Len(t, got.Suggestions, 3)
}

func TestClassify_DefaultIntent(t *testing.T) {
	c := DefaultClassifier().WithPicker(func(n int) int { return n - 1 })

	got := c.Classify("xyz123")
	assert.Equal(t, DefaultIntent, got.Intent)
	assert.Equal(t, DefaultConfidence, got.Confidence)
	assert.Equal(t, "Tu consulta es muy específica. ¿Te parece si coordinas una llamada con uno de nuestros especialistas?", got.Response)
	assert.Equal(t, defaultSuggestions, got.Suggestions)
}

func TestClassify_IntentWithoutSuggestionsUsesDefault(t *testing.T) {
	got := DefaultClassifier().WithPicker(firstPick).Classify("horarios")

	assert.Equal(t, "horarios", got.Intent)
	assert.Equal(t, defaultSuggestions, got.Suggestions)
}

func TestClassify_ResponseIsOneOfCandidates(t *testing.T) {
	c := DefaultClassifier()
	candidates := []string{
		"Trabajamos con todos los bancos para créditos hipotecarios. ¿Necesitas info sobre financiación?",
		"Ofrecemos asesoramiento para créditos UVA, tradicionales y planes gubernamentales",
		"Podemos ayudarte con la gestión de créditos hipotecarios. ¿Ya pre-calificaste en algún banco?",
	}
	for range 50 {
		assert.Contains(t, candidates, c.Classify("cuotas").Response)
	}
}

func TestClassify_FirstIntentWins(t *testing.T) {
	c := NewIntentClassifier(Intent{Responses: []string{"?"}},
		Intent{Name: "a", Patterns: patterns(`hola`), Responses: []string{"A"}},
		Intent{Name: "b", Patterns: patterns(`precio`), Responses: []string{"B"}},
	)

	assert.Equal(t, "A", c.Classify("Hola, cual es el precio?").Response)
	assert.Equal(t, []string{"a", "b"}, c.Intents())
}

func TestSuggestions_ReturnsCopy(t *testing.T) {
	s := Suggestions()
	require.Len(t, s, 8)
	s[0] = "changed"
	assert.NotEqual(t, "changed", FAQ[0])
}

func TestStats(t *testing.T) {
	s := NewStats()
	empty := s.Snapshot()
	assert.Zero(t, empty.Processed)
	assert.Empty(t, empty.TopIntents)
	assert.Zero(t, empty.AverageResponseTime)

	var wg sync.WaitGroup
	record := func(intent string, n int) {
		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.Record(intent, 100*time.Millisecond)
			}()
		}
	}
	record("propiedades", 6)
	record("precios", 5)
	record("contacto", 4)
	record("ubicacion", 3)
	record("alquiler", 2)
	record("venta", 2)
	wg.Wait()

	snap := s.Snapshot()
	assert.Equal(t, 22, snap.Processed)
	require.Len(t, snap.TopIntents, TopIntentsLimit)
	assert.Equal(t, "propiedades", snap.TopIntents[0].Intent)
	assert.Equal(t, 6, snap.TopIntents[0].Count)
	assert.Equal(t, "alquiler", snap.TopIntents[4].Intent)
	assert.InDelta(t, 0.1, snap.AverageResponseTime, 1e-9)
}
