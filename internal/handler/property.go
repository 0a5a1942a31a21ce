package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inmomax/internal/logger"
	"inmomax/internal/model"
	"inmomax/internal/service"
)

// PropertyHandler handles property-related HTTP requests
type PropertyHandler struct {
	properties *service.PropertyService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(properties *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

// List handles GET /api/propiedades
func (h *PropertyHandler) List(c *gin.Context) {
	resp, err := h.properties.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/propiedades/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := propertyID(c)
	if !ok {
		return
	}

	prop, err := h.properties.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, prop)
}

// Create handles POST /api/propiedades
func (h *PropertyHandler) Create(c *gin.Context) {
	var in model.PropertyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	prop, err := h.properties.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prop)
}

// Update handles PUT /api/propiedades/:id
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := propertyID(c)
	if !ok {
		return
	}

	var in model.PropertyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	prop, err := h.properties.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, prop)
}

// Delete handles DELETE /api/propiedades/:id
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := propertyID(c)
	if !ok {
		return
	}

	if err := h.properties.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Propiedad eliminada exitosamente"})
}

// Similar handles GET /api/propiedades/:id/similares
func (h *PropertyHandler) Similar(c *gin.Context) {
	id, ok := propertyID(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limite"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limite"})
			return
		}
		limit = n
	}

	props, err := h.properties.Similar(c.Request.Context(), id, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, props)
}

type favoriteRequest struct {
	UserID string `json:"usuario_id" form:"usuario_id"`
}

// Favorite handles POST /api/propiedades/:id/favorito. The user id comes from
// the usuario_id query parameter or the JSON body.
func (h *PropertyHandler) Favorite(c *gin.Context) {
	id, ok := propertyID(c)
	if !ok {
		return
	}

	req := favoriteRequest{UserID: c.Query("usuario_id")}
	if req.UserID == "" && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
	}

	resp, err := h.properties.ToggleFavorite(c.Request.Context(), id, req.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Stats handles GET /api/estadisticas
func (h *PropertyHandler) Stats(c *gin.Context) {
	stats, err := h.properties.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func propertyID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return 0, false
	}
	return id, true
}

// writeError maps service errors to HTTP status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Propiedad no encontrada"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.FromContext(c.Request.Context()).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
	}
}
