package ports

import (
	"context"

	"github.com/reflectify/reflectify-api/internal/core/domain"
)

// EmotionResult is the structured outcome of an emotion analysis.
type EmotionResult struct {
	Report domain.MoodReport
	Record *domain.EmotionRecord
}

// AnalysisService runs prompts through the generative-text provider.
type AnalysisService interface {
	AnalyzeEmotion(ctx context.Context, userID, prompt string) (*EmotionResult, error)
	// AnalyzeExpense returns the provider text unparsed.
	AnalyzeExpense(ctx context.Context, prompt string) (string, error)
	EmotionHistory(ctx context.Context, userID string, limit int) ([]*domain.EmotionRecord, error)
}
