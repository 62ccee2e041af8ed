package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
	"github.com/vytor/studyflash/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool       *worker.Pool
	jobRepo    repository.JobRepository
	runner     worker.GenerationRunner
	jobTimeout time.Duration
	now        func() time.Time
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, jobRepo repository.JobRepository, runner worker.GenerationRunner, jobTimeout time.Duration) *WorkerQueue {
	return &WorkerQueue{
		pool:       pool,
		jobRepo:    jobRepo,
		runner:     runner,
		jobTimeout: jobTimeout,
		now:        time.Now,
	}
}

func (q *WorkerQueue) EnqueueGeneration(ctx context.Context, profileID, noteID int64, kind models.JobKind) (*models.GenerationJob, error) {
	log := logger.FromContext(ctx).WithPrefix("job_queue")

	now := q.now().UTC()
	job := models.GenerationJob{
		ID:        uuid.NewString(),
		ProfileID: profileID,
		NoteID:    noteID,
		Kind:      kind,
		Status:    models.JobStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := q.jobRepo.Insert(ctx, job); err != nil {
		return nil, err
	}

	err := q.pool.Submit(&worker.GenerateJob{
		Runner:  q.runner,
		Jobs:    q.jobRepo,
		Job:     job,
		Timeout: q.jobTimeout,
		Now:     q.now,
	})
	if err != nil {
		log.Warn("could not submit %s job %s: %v", kind, job.ID, err)
		if markErr := q.jobRepo.MarkFailed(ctx, job.ID, err.Error(), q.now().UTC()); markErr != nil {
			log.Error("failed to mark rejected job %s: %v", job.ID, markErr)
		}
		return nil, err
	}

	log.Debug("enqueued %s job %s for note %d", kind, job.ID, noteID)
	return &job, nil
}

// Recover fails jobs orphaned by a previous process so clients polling them
// see a terminal status.
func (q *WorkerQueue) Recover(ctx context.Context) error {
	_, err := q.jobRepo.FailUnfinished(ctx, "interrupted by server restart", q.now().UTC())
	return err
}
