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

type AnalysisRepo interface {
	Insert(ctx context.Context, rec *types.AnalysisRecord) error
	GetByID(ctx context.Context, id uint) (*types.AnalysisRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*types.AnalysisRecord, error)
}

type analysisRepo struct {
	db  *gorm.DB
	log *logger.Logger

	// writeMu keeps the created_at stamp and the insert in one critical
	// section, so created_at stays non-decreasing in id order.
	writeMu sync.Mutex
}

func NewAnalysisRepo(db *gorm.DB, log *logger.Logger) AnalysisRepo {
	return &analysisRepo{db: db, log: log.With("repo", "AnalysisRepo")}
}

// Insert assigns the id and created_at and writes the record in one
// statement. The record the caller holds is updated in place.
func (r *analysisRepo) Insert(ctx context.Context, rec *types.AnalysisRecord) error {
	if rec == nil {
		return fmt.Errorf("missing record")
	}
	rec.ID = 0
	if rec.Emotions == nil {
		rec.Emotions = []string{}
	}
	if rec.RulesBroken == nil {
		rec.RulesBroken = []string{}
	}
	if rec.Biases == nil {
		rec.Biases = []string{}
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	rec.CreatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		r.log.Error("Insert failed", "error", err)
		return err
	}
	return nil
}

func (r *analysisRepo) GetByID(ctx context.Context, id uint) (*types.AnalysisRecord, error) {
	if id == 0 {
		return nil, fmt.Errorf("missing id")
	}
	var rec types.AnalysisRecord
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("analysis record %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &rec, nil
}

func (r *analysisRepo) ListRecent(ctx context.Context, limit int) ([]*types.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	var out []*types.AnalysisRecord
	if err := r.db.WithContext(ctx).
		Model(&types.AnalysisRecord{}).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
