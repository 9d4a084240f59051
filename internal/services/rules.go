package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tradermind/backend/internal/apperrors"
	"github.com/tradermind/backend/internal/logger"
	"github.com/tradermind/backend/internal/repos"
	"github.com/tradermind/backend/internal/types"
)

type RuleCreateInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Category    string  `json:"category"`
	IsActive    *bool   `json:"is_active"`
}

type RuleUpdateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	IsActive    *bool   `json:"is_active"`
}

type RulesService struct {
	log  *logger.Logger
	repo repos.RuleRepo
}

func NewRulesService(log *logger.Logger, repo repos.RuleRepo) *RulesService {
	return &RulesService{log: log.With("service", "RulesService"), repo: repo}
}

func (s *RulesService) Create(ctx context.Context, in RuleCreateInput) (*types.TradingRule, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("title is required: %w", apperrors.ErrInvalidArgument)
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "discipline"
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	rule := &types.TradingRule{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    category,
		IsActive:    active,
	}
	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *RulesService) Get(ctx context.Context, id uint) (*types.TradingRule, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RulesService) List(ctx context.Context, offset, limit int) ([]*types.TradingRule, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *RulesService) Update(ctx context.Context, id uint, in RuleUpdateInput) (*types.TradingRule, error) {
	updates := map[string]interface{}{}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, fmt.Errorf("title cannot be empty: %w", apperrors.ErrInvalidArgument)
		}
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Category != nil {
		updates["category"] = strings.TrimSpace(*in.Category)
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if err := s.repo.UpdateFields(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *RulesService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *RulesService) ToggleActive(ctx context.Context, id uint) (*types.TradingRule, error) {
	rule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateFields(ctx, id, map[string]interface{}{"is_active": !rule.IsActive}); err != nil {
		return nil, err
	}
	rule.IsActive = !rule.IsActive
	return rule, nil
}
