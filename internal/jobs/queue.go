package jobs

import (
	"context"

	"github.com/vytor/studyflash/internal/models"
)

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	// EnqueueGeneration records a pending job and hands it to the workers.
	// It returns worker.ErrQueueFull when there is no room.
	EnqueueGeneration(ctx context.Context, profileID, noteID int64, kind models.JobKind) (*models.GenerationJob, error)
}
