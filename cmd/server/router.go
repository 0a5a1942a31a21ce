package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"inmomax/internal/chatbot"
	"inmomax/internal/config"
	"inmomax/internal/handler"
	"inmomax/internal/logger"
	"inmomax/internal/metrics"
	"inmomax/internal/middleware"
	"inmomax/internal/repository"
	"inmomax/internal/service"
)

// maxBodyBytes bounds every request body; property descriptions are the
// largest legitimate payload.
const maxBodyBytes = 1 << 20

const limiterSweepInterval = time.Minute

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	return logger.NewLogger(cfg.Env, cfg.Level)
}

// newRouter builds the HTTP engine. Background work it starts stops with ctx.
func newRouter(ctx context.Context, cfg *config.Config, log *zap.Logger, repo repository.PropertyRepository, build handler.BuildInfo) *gin.Engine {
	propertyService := service.NewPropertyService(repo, cfg.Catalog)
	chatService := service.NewChatService(
		chatbot.DefaultClassifier(),
		chatbot.NewStats(),
		metrics.ChatRecorder{},
		cfg.Chat.MaxMessageSize,
	)

	router := gin.New()
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery())
	router.Use(metrics.Middleware())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimiter(maxBodyBytes))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	corsConfig.AllowMethods = cfg.Server.AllowedMethods
	corsConfig.AllowHeaders = cfg.Server.AllowedHeaders
	router.Use(cors.New(corsConfig))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	chatLimiter := middleware.NewRateLimiter(cfg.Chat.RatePerSecond, cfg.Chat.RateBurst, metrics.ChatRateLimitedTotal.Inc)
	go chatLimiter.Cleanup(ctx, limiterSweepInterval)
	handler.RegisterRoutes(router,
		handler.NewHealthHandler(build, repo),
		handler.NewPropertyHandler(propertyService),
		handler.NewChatHandler(chatService),
		chatLimiter.PerIP(),
	)

	return router
}
