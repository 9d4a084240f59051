package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tradermind/backend/internal/apperrors"
	"github.com/tradermind/backend/internal/response"
	"github.com/tradermind/backend/internal/services"
)

type analyzeRequest struct {
	Text    string `json:"text"`
	Context string `json:"context"`
}

type FeedbackHandler struct {
	service *services.FeedbackService
}

func NewFeedbackHandler(service *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Analyze is the stateless endpoint: analysis fields only, no DB write.
func (h *FeedbackHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	fields, err := h.service.Analyze(c.Request.Context(), req.Text, req.Context)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			response.RespondError(c, http.StatusBadRequest, "invalid_input", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "analyze_failed", err)
		return
	}
	response.RespondOK(c, fields)
}

func (h *FeedbackHandler) Save(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	rec, err := h.service.AnalyzeAndSave(c.Request.Context(), req.Text, req.Context)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			response.RespondError(c, http.StatusBadRequest, "invalid_input", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "save_failed", err)
		return
	}
	response.RespondOK(c, rec)
}

func (h *FeedbackHandler) List(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	records, err := h.service.List(c.Request.Context(), limit)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, records)
}

func (h *FeedbackHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.RespondError(c, http.StatusBadRequest, "bad_id", errors.New("id must be a positive integer"))
		return
	}

	rec, err := h.service.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.RespondError(c, http.StatusNotFound, "not_found", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "get_failed", err)
		return
	}
	response.RespondOK(c, rec)
}
