package server

import (
	"github.com/gin-gonic/gin"

	"github.com/tradermind/backend/internal/handlers"
	"github.com/tradermind/backend/internal/logger"
	"github.com/tradermind/backend/internal/middleware"
)

type RouterConfig struct {
	Log             *logger.Logger
	HealthHandler   *handlers.HealthHandler
	FeedbackHandler *handlers.FeedbackHandler
	ChatHandler     *handlers.ChatHandler
	RulesHandler    *handlers.RulesHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(cfg.Log))

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	// Feedback pipeline
	router.POST("/feedback/analyze", cfg.FeedbackHandler.Analyze)
	router.POST("/feedback/save", cfg.FeedbackHandler.Save)
	router.GET("/feedback", cfg.FeedbackHandler.List)
	router.GET("/feedback/:id", cfg.FeedbackHandler.Get)

	// Chat
	router.POST("/chat", cfg.ChatHandler.Chat)

	// Trading rules
	rules := router.Group("/rules")
	{
		rules.GET("", cfg.RulesHandler.List)
		rules.POST("", cfg.RulesHandler.Create)
		rules.GET("/:id", cfg.RulesHandler.Get)
		rules.PUT("/:id", cfg.RulesHandler.Update)
		rules.DELETE("/:id", cfg.RulesHandler.Delete)
		rules.PATCH("/:id/toggle", cfg.RulesHandler.Toggle)
	}

	return router
}
