package repos

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/tradermind/backend/internal/apperrors"
	"github.com/tradermind/backend/internal/logger"
	"github.com/tradermind/backend/internal/types"
)

type RuleRepo interface {
	Create(ctx context.Context, rule *types.TradingRule) error
	GetByID(ctx context.Context, id uint) (*types.TradingRule, error)
	List(ctx context.Context, offset, limit int) ([]*types.TradingRule, error)
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type ruleRepo struct {
	db  *gorm.DB
	log *logger.Logger

	// writeMu keeps the created_at stamp and the insert in one critical
	// section, so created_at stays non-decreasing in id order.
	writeMu sync.Mutex
}

func NewRuleRepo(db *gorm.DB, log *logger.Logger) RuleRepo {
	return &ruleRepo{db: db, log: log.With("repo", "RuleRepo")}
}

func (r *ruleRepo) Create(ctx context.Context, rule *types.TradingRule) error {
	if rule == nil {
		return fmt.Errorf("missing rule")
	}
	rule.ID = 0

	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	rule.CreatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		r.log.Error("Create failed", "error", err)
		return err
	}
	return nil
}

func (r *ruleRepo) GetByID(ctx context.Context, id uint) (*types.TradingRule, error) {
	if id == 0 {
		return nil, fmt.Errorf("missing id")
	}
	var rule types.TradingRule
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("trading rule %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &rule, nil
}

func (r *ruleRepo) List(ctx context.Context, offset, limit int) ([]*types.TradingRule, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var out []*types.TradingRule
	if err := r.db.WithContext(ctx).
		Model(&types.TradingRule{}).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ruleRepo) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	if id == 0 {
		return fmt.Errorf("missing id")
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&types.TradingRule{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("trading rule %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *ruleRepo) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return fmt.Errorf("missing id")
	}
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.TradingRule{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("trading rule %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
