package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"inmomax/internal/chatbot"
	"inmomax/internal/logger"
	"inmomax/internal/model"
)

// IntentRecorder observes classified chat messages.
type IntentRecorder interface {
	RecordIntent(intent string, confidence float64)
}

// ChatService answers chatbot API messages
type ChatService struct {
	classifier *chatbot.IntentClassifier
	stats      *chatbot.Stats
	recorder   IntentRecorder
	maxLength  int
	now        func() time.Time
}

// NewChatService creates a new chat service. recorder may be nil.
func NewChatService(classifier *chatbot.IntentClassifier, stats *chatbot.Stats, recorder IntentRecorder, maxLength int) *ChatService {
	return &ChatService{
		classifier: classifier,
		stats:      stats,
		recorder:   recorder,
		maxLength:  maxLength,
		now:        time.Now,
	}
}

// Reply classifies a message and builds the chatbot answer.
func (s *ChatService) Reply(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, invalid("El mensaje no puede estar vacío")
	}
	if s.maxLength > 0 && utf8.RuneCountInString(msg) > s.maxLength {
		return nil, invalid("El mensaje no puede superar los %d caracteres", s.maxLength)
	}

	start := s.now()
	result := s.classifier.Classify(msg)
	elapsed := s.now().Sub(start)

	s.stats.Record(result.Intent, elapsed)
	if s.recorder != nil {
		s.recorder.RecordIntent(result.Intent, result.Confidence)
	}

	fields := []zap.Field{
		zap.String("intent", result.Intent),
		zap.Float64("confidence", result.Confidence),
	}
	if req.UserID != nil {
		fields = append(fields, zap.String("user_id", *req.UserID))
	}
	logger.FromContext(ctx).Info("chat message answered", fields...)

	return &model.ChatResponse{
		Response:    result.Response,
		Timestamp:   s.now(),
		Confidence:  result.Confidence,
		Suggestions: result.Suggestions,
		Intent:      result.Intent,
	}, nil
}

// Suggestions returns the frequent questions.
func (s *ChatService) Suggestions() []string {
	return chatbot.Suggestions()
}

// Stats returns usage since process start.
func (s *ChatService) Stats() model.ChatStats {
	return s.stats.Snapshot()
}
