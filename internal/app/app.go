package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tradermind/backend/internal/config"
	"github.com/tradermind/backend/internal/db"
	"github.com/tradermind/backend/internal/handlers"
	"github.com/tradermind/backend/internal/llm"
	"github.com/tradermind/backend/internal/logger"
	"github.com/tradermind/backend/internal/repos"
	"github.com/tradermind/backend/internal/server"
	"github.com/tradermind/backend/internal/services"
)

type App struct {
	Log    *logger.Logger
	Cfg    config.Config
	DB     *gorm.DB
	Router *gin.Engine
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading configuration...")
	cfg := config.Load(log)

	dbService, err := db.NewDatabaseService(&cfg, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := dbService.DB()

	llmClient, err := llm.New(llm.Options{
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	})
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init llm client: %w", err)
	}

	log.Info("Wiring repos and services...")
	analysisRepo := repos.NewAnalysisRepo(theDB, log)
	ruleRepo := repos.NewRuleRepo(theDB, log)

	feedbackService := services.NewFeedbackService(log, llmClient, analysisRepo)
	rulesService := services.NewRulesService(log, ruleRepo)

	router := server.NewRouter(server.RouterConfig{
		Log:             log,
		HealthHandler:   handlers.NewHealthHandler(),
		FeedbackHandler: handlers.NewFeedbackHandler(feedbackService),
		ChatHandler:     handlers.NewChatHandler(feedbackService),
		RulesHandler:    handlers.NewRulesHandler(rulesService),
	})

	return &App{
		Log:    log,
		Cfg:    cfg,
		DB:     theDB,
		Router: router,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Server listening", "port", a.Cfg.Port)
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
