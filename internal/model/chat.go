package model

import "time"

// ChatRequest represents a chatbot message request
type ChatRequest struct {
	Message string         `json:"mensaje" binding:"required"`
	UserID  *string        `json:"usuario_id,omitempty"`
	Context map[string]any `json:"contexto,omitempty"`
}

// ChatResponse represents the chatbot reply
type ChatResponse struct {
	Response    string    `json:"respuesta"`
	Timestamp   time.Time `json:"timestamp"`
	Confidence  float64   `json:"confianza"`
	Suggestions []string  `json:"sugerencias"`
	Intent      string    `json:"intencion_detectada,omitempty"`
}

// IntentCount is the number of messages classified under one intent
type IntentCount struct {
	Intent string `json:"intencion"`
	Count  int    `json:"cantidad"`
}

// ChatStats summarizes chatbot usage since process start
type ChatStats struct {
	Processed           int           `json:"mensajes_procesados"`
	TopIntents          []IntentCount `json:"intenciones_mas_frecuentes"`
	AverageResponseTime float64       `json:"tiempo_promedio_respuesta"` // seconds
}
