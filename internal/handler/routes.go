package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the public API. chatGuard runs in front of the chat
// message endpoint only.
func RegisterRoutes(r gin.IRouter, health *HealthHandler, properties *PropertyHandler, chat *ChatHandler, chatGuard ...gin.HandlerFunc) {
	r.GET("/health", health.Health)
	r.GET("/version", health.Version)

	api := r.Group("/api")
	{
		props := api.Group("/propiedades")
		props.GET("", properties.List)
		props.POST("", properties.Create)
		props.GET("/:id", properties.Get)
		props.PUT("/:id", properties.Update)
		props.DELETE("/:id", properties.Delete)
		props.GET("/:id/similares", properties.Similar)
		props.POST("/:id/favorito", properties.Favorite)

		api.GET("/estadisticas", properties.Stats)

		bot := api.Group("/chatbot")
		bot.POST("/mensaje", append(chatGuard, chat.Message)...)
		bot.GET("/sugerencias", chat.Suggestions)
		bot.GET("/estadisticas", chat.Stats)
	}
}
