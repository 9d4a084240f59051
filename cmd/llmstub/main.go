package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/tradermind/backend/internal/analysis"
	"github.com/tradermind/backend/internal/logger"
	"github.com/tradermind/backend/internal/utils"
)

// llmstub stands in for a locally-hosted model during development. It
// answers /generate deterministically by running the keyword extractor
// over the prompt, so the full pipeline works without a model host.

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

func main() {
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "llmstub"})
	})

	router.POST("/generate", func(c *gin.Context) {
		var req generateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		fields := analysis.Extract(req.Prompt)
		body, err := json.Marshal(fields)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		log.Debug("Stub generate", "model", req.Model, "prompt_len", len(req.Prompt))
		c.JSON(http.StatusOK, gin.H{"response": string(body)})
	})

	port := utils.GetEnv("LLM_PORT", "8002", log)
	log.Info("LLM stub listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("LLM stub failed", "error", err)
		os.Exit(1)
	}
}
