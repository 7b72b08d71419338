package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/reflectify/reflectify-api/internal/core/domain"
	"github.com/reflectify/reflectify-api/internal/core/ports"
	"github.com/reflectify/reflectify-api/pkg/metrics"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// AnalysisService runs the emotion and expense flows.
type AnalysisService struct {
	generator ports.TextGenerator
	emotions  ports.EmotionRepository
	log       zerolog.Logger
}

func NewAnalysisService(generator ports.TextGenerator, emotions ports.EmotionRepository, log zerolog.Logger) *AnalysisService {
	return &AnalysisService{generator: generator, emotions: emotions, log: log}
}

// AnalyzeEmotion generates a mood analysis for prompt, parses it and stores
// the result for userID. Reports without a numeric score are not stored.
func (s *AnalysisService) AnalyzeEmotion(ctx context.Context, userID, prompt string) (*ports.EmotionResult, error) {
	if prompt == "" {
		return nil, domain.ErrPromptRequired
	}

	text, err := s.generator.Generate(ctx, domain.ProfileEmotion, prompt)
	if err != nil {
		return nil, fmt.Errorf("analyze emotion: %w", err)
	}

	report := ParseMoodReport(text)
	if report.Score == nil || report.Score.IsNaN() {
		metrics.UnscoredReportsTotal.Inc()
		s.log.Warn().Str("user_id", userID).Int("response_len", len(text)).Msg("emotion analysis without numeric score")
		return nil, domain.ErrUnscoredReport
	}

	now := time.Now().UTC()
	record, err := s.emotions.Create(ctx, &domain.EmotionRecord{
		UserID:     userID,
		Mood:       report.Mood,
		UserPrompt: prompt,
		Score:      *report.Score,
		Analysis:   report.Analysis,
		Date:       now,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze emotion: save: %w", err)
	}

	s.log.Info().Str("user_id", userID).Str("record_id", record.ID).Msg("emotion analysis saved")
	return &ports.EmotionResult{Report: report, Record: record}, nil
}

func (s *AnalysisService) AnalyzeExpense(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", domain.ErrPromptRequired
	}

	text, err := s.generator.Generate(ctx, domain.ProfileExpense, prompt)
	if err != nil {
		return "", fmt.Errorf("analyze expense: %w", err)
	}
	return text, nil
}

// EmotionHistory lists the caller's stored analyses, newest first. limit is
// clamped to (0, maxHistoryLimit]; zero or negative selects the default.
func (s *AnalysisService) EmotionHistory(ctx context.Context, userID string, limit int) ([]*domain.EmotionRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	records, err := s.emotions.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("emotion history: %w", err)
	}
	return records, nil
}
