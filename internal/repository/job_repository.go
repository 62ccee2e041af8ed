package repository

import (
	"context"
	"time"

	"github.com/vytor/studyflash/internal/models"
)

// JobRepository persists the lifecycle of AI generation jobs
type JobRepository interface {
	Insert(ctx context.Context, job models.GenerationJob) error
	Get(ctx context.Context, id string, profileID int64) (*models.GenerationJob, error)
	MarkRunning(ctx context.Context, id string, at time.Time) error
	MarkCompleted(ctx context.Context, id string, resultCount int, quizID *int64, at time.Time) error
	MarkFailed(ctx context.Context, id string, reason string, at time.Time) error
	// FailUnfinished fails jobs left pending or running by a previous process.
	FailUnfinished(ctx context.Context, reason string, at time.Time) (int64, error)
}
