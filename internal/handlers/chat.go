package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradermind/backend/internal/apperrors"
	"github.com/tradermind/backend/internal/llm"
	"github.com/tradermind/backend/internal/response"
	"github.com/tradermind/backend/internal/services"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type ChatHandler struct {
	service *services.FeedbackService
}

func NewChatHandler(service *services.FeedbackService) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	out, err := h.service.Chat(c.Request.Context(), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidArgument):
			response.RespondError(c, http.StatusBadRequest, "invalid_input", err)
		case errors.Is(err, llm.ErrUnavailable):
			response.RespondError(c, http.StatusBadGateway, "model_unavailable", err)
		default:
			response.RespondError(c, http.StatusInternalServerError, "chat_failed", err)
		}
		return
	}
	response.RespondOK(c, chatResponse{Response: out})
}
