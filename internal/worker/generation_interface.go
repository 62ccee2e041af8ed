package worker

import (
	"context"

	"github.com/vytor/studyflash/internal/models"
)

// GenerationResult is what a finished generation job reports back.
type GenerationResult struct {
	Count  int
	QuizID *int64
}

// GenerationRunner performs the AI work behind a generation job.
// This avoids import cycles by not importing the services package
type GenerationRunner interface {
	RunGeneration(ctx context.Context, job models.GenerationJob) (GenerationResult, error)
}
