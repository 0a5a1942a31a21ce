package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inmomax/internal/model"
	"inmomax/internal/service"
)

// ChatHandler handles chatbot HTTP requests
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Message handles POST /api/chatbot/mensaje
func (h *ChatHandler) Message(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.chat.Reply(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Suggestions handles GET /api/chatbot/sugerencias
func (h *ChatHandler) Suggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sugerencias": h.chat.Suggestions()})
}

// Stats handles GET /api/chatbot/estadisticas
func (h *ChatHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.chat.Stats())
}
