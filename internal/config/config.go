package config

import (
	"fmt"
	"time"

	"github.com/tradermind/backend/internal/logger"
	"github.com/tradermind/backend/internal/utils"
)

// Config is built once per process and handed to constructors. Pipeline
// code never reads the environment on its own.
type Config struct {
	Port string

	DBDriver string
	DBPath   string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresName     string

	LLMBaseURL string
	LLMModel   string
	LLMTimeout time.Duration
}

func Load(log *logger.Logger) Config {
	llmHost := utils.GetEnv("LLM_HOST", "127.0.0.1", log)
	llmPort := utils.GetEnv("LLM_PORT", "8002", log)
	llmTimeoutSeconds := utils.GetEnvAsInt("LLM_TIMEOUT_SECONDS", 60, log)

	return Config{
		Port: utils.GetEnv("PORT", "8001", log),

		DBDriver: utils.GetEnv("DB_DRIVER", "sqlite", log),
		DBPath:   utils.GetEnv("DB_PATH", "trademind.db", log),

		PostgresHost:     utils.GetEnv("POSTGRES_HOST", "localhost", log),
		PostgresPort:     utils.GetEnv("POSTGRES_PORT", "5432", log),
		PostgresUser:     utils.GetEnv("POSTGRES_USER", "postgres", log),
		PostgresPassword: utils.GetEnv("POSTGRES_PASSWORD", "", log),
		PostgresName:     utils.GetEnv("POSTGRES_NAME", "tradermind", log),

		LLMBaseURL: utils.GetEnv("LLM_BASE_URL", fmt.Sprintf("http://%s:%s", llmHost, llmPort), log),
		LLMModel:   utils.GetEnv("LLM_MODEL", "local", log),
		LLMTimeout: time.Duration(llmTimeoutSeconds) * time.Second,
	}
}
