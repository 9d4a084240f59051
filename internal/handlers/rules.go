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

type RulesHandler struct {
	service *services.RulesService
}

func NewRulesHandler(service *services.RulesService) *RulesHandler {
	return &RulesHandler{service: service}
}

func (h *RulesHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	rules, err := h.service.List(c.Request.Context(), offset, limit)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, rules)
}

func (h *RulesHandler) Create(c *gin.Context) {
	var in services.RuleCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	rule, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			response.RespondError(c, http.StatusBadRequest, "invalid_input", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, rule)
}

func (h *RulesHandler) Get(c *gin.Context) {
	id, ok := ruleID(c)
	if !ok {
		return
	}
	rule, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.respondRuleError(c, err)
		return
	}
	response.RespondOK(c, rule)
}

func (h *RulesHandler) Update(c *gin.Context) {
	id, ok := ruleID(c)
	if !ok {
		return
	}
	var in services.RuleUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	rule, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		h.respondRuleError(c, err)
		return
	}
	response.RespondOK(c, rule)
}

func (h *RulesHandler) Delete(c *gin.Context) {
	id, ok := ruleID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondRuleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RulesHandler) Toggle(c *gin.Context) {
	id, ok := ruleID(c)
	if !ok {
		return
	}
	rule, err := h.service.ToggleActive(c.Request.Context(), id)
	if err != nil {
		h.respondRuleError(c, err)
		return
	}
	response.RespondOK(c, rule)
}

func (h *RulesHandler) respondRuleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperrors.ErrInvalidArgument):
		response.RespondError(c, http.StatusBadRequest, "invalid_input", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, "rules_failed", err)
	}
}

func ruleID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.RespondError(c, http.StatusBadRequest, "bad_id", errors.New("id must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}
