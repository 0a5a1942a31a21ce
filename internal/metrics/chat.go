package metrics

import "github.com/prometheus/client_golang/prometheus"

// Chatbot and catalog metrics.
var (
	ChatMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inmomax",
			Name:      "chat_messages_total",
			Help:      "Chat messages answered, by detected intent",
		},
		[]string{"intent"},
	)

	ChatConfidence = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "inmomax",
			Name:      "chat_confidence",
			Help:      "Confidence of chat answers",
			Buckets:   []float64{0.1, 0.3, 0.5, 0.7, 0.9, 1},
		},
	)

	ChatRateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "inmomax",
			Name:      "chat_rate_limited_total",
			Help:      "Chat messages rejected by the rate limiter",
		},
	)
)

func init() {
	prometheus.MustRegister(ChatMessagesTotal)
	prometheus.MustRegister(ChatConfidence)
	prometheus.MustRegister(ChatRateLimitedTotal)
}

// ChatRecorder feeds classified chat messages into the chat metrics.
type ChatRecorder struct{}

// RecordIntent counts one answered message.
func (ChatRecorder) RecordIntent(intent string, confidence float64) {
	ChatMessagesTotal.WithLabelValues(intent).Inc()
	ChatConfidence.Observe(confidence)
}
