package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tradermind/backend/internal/analysis"
	"github.com/tradermind/backend/internal/apperrors"
	"github.com/tradermind/backend/internal/llm"
	"github.com/tradermind/backend/internal/logger"
	"github.com/tradermind/backend/internal/repos"
	"github.com/tradermind/backend/internal/types"
)

// TextGenerator is the model backend surface the pipeline needs.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// FeedbackService runs the analysis pipeline: validate input, call the
// model, parse or fall back, persist on request.
type FeedbackService struct {
	log  *logger.Logger
	gen  TextGenerator
	repo repos.AnalysisRepo
}

func NewFeedbackService(log *logger.Logger, gen TextGenerator, repo repos.AnalysisRepo) *FeedbackService {
	return &FeedbackService{
		log:  log.With("service", "FeedbackService"),
		gen:  gen,
		repo: repo,
	}
}

// Analyze produces structured analysis fields for a journal entry. It
// has no persistence side effect. A model outage or unparseable model
// output downgrades to the keyword fallback; it never fails the call.
func (s *FeedbackService) Analyze(ctx context.Context, text, contextText string) (analysis.Fields, error) {
	if strings.TrimSpace(text) == "" {
		return analysis.Fields{}, fmt.Errorf("text is required: %w", apperrors.ErrInvalidArgument)
	}

	prompt := analysis.BuildPrompt(text, contextText)

	raw, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, llm.ErrUnavailable) {
			s.log.Warn("Model backend unavailable, using fallback extractor", "error", err)
			return analysis.Extract(text), nil
		}
		return analysis.Fields{}, err
	}

	fields, err := analysis.Parse(raw)
	if err != nil {
		if errors.Is(err, analysis.ErrParse) {
			s.log.Warn("Model output unparseable, using fallback extractor", "error", err)
			return analysis.Extract(text), nil
		}
		return analysis.Fields{}, err
	}
	return fields, nil
}

// AnalyzeAndSave runs Analyze and persists the result as a new record.
// A store write failure fails the request; a record is never reported
// as saved unless it was.
func (s *FeedbackService) AnalyzeAndSave(ctx context.Context, text, contextText string) (*types.AnalysisRecord, error) {
	fields, err := s.Analyze(ctx, text, contextText)
	if err != nil {
		return nil, err
	}

	rec := &types.AnalysisRecord{
		Text:        text,
		Emotions:    fields.Emotions,
		RulesBroken: fields.RulesBroken,
		Biases:      fields.Biases,
		Advice:      fields.Advice,
	}
	if trimmed := strings.TrimSpace(contextText); trimmed != "" {
		rec.Context = &trimmed
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("save analysis record: %w", err)
	}
	s.log.Info("Analysis record saved", "id", rec.ID)
	return rec, nil
}

func (s *FeedbackService) Get(ctx context.Context, id uint) (*types.AnalysisRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FeedbackService) List(ctx context.Context, limit int) ([]*types.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.ListRecent(ctx, limit)
}

// Chat is free-form generation with the assistant framing. There is no
// structured fallback for chat, so backend failures surface.
func (s *FeedbackService) Chat(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message is required: %w", apperrors.ErrInvalidArgument)
	}
	return s.gen.Generate(ctx, analysis.BuildChatPrompt(message))
}
