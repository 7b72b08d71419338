package ports

import (
	"context"

	"github.com/reflectify/reflectify-api/internal/core/domain"
)

// TextGenerator sends a prompt to the generative-text provider under the
// instructions bound to profile and returns the raw response text.
type TextGenerator interface {
	Generate(ctx context.Context, profile domain.AnalysisProfile, prompt string) (string, error)
}
