package ports

import (
	"context"

	"github.com/reflectify/reflectify-api/internal/core/domain"
)

// EmotionRepository persists emotion analyses.
type EmotionRepository interface {
	Create(ctx context.Context, record *domain.EmotionRecord) (*domain.EmotionRecord, error)
	// ListByUser returns at most limit records for userID, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.EmotionRecord, error)
}
