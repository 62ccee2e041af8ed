package worker

import (
	"context"
	"time"

	apperrors "github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

// GenerateJob drives one generation_jobs row from running to a terminal
// status around the runner's work.
type GenerateJob struct {
	Runner  GenerationRunner
	Jobs    repository.JobRepository
	Job     models.GenerationJob
	Timeout time.Duration
	// Now stamps status changes. Nil means time.Now.
	Now func() time.Time
}

func (j *GenerateJob) Name() string { return "generate_" + string(j.Job.Kind) }

func (j *GenerateJob) now() time.Time {
	if j.Now == nil {
		return time.Now().UTC()
	}
	return j.Now().UTC()
}

func (j *GenerateJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"job_id":  j.Job.ID,
		"note_id": j.Job.NoteID,
	})
	ctx = logger.NewContext(ctx, log)

	if err := j.Jobs.MarkRunning(ctx, j.Job.ID, j.now()); err != nil {
		log.Error("failed to mark job running: %v", err)
		return err
	}

	runCtx := ctx
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	result, err := j.Runner.RunGeneration(runCtx, j.Job)

	// The outcome is recorded even when shutdown cancelled the work.
	recordCtx := context.WithoutCancel(ctx)
	if err != nil {
		reason := apperrors.AsAppError(err).Message
		if ctx.Err() != nil {
			reason = "cancelled by server shutdown"
		}
		if markErr := j.Jobs.MarkFailed(recordCtx, j.Job.ID, reason, j.now()); markErr != nil {
			log.Error("failed to mark job failed: %v", markErr)
		}
		return err
	}

	if err := j.Jobs.MarkCompleted(recordCtx, j.Job.ID, result.Count, result.QuizID, j.now()); err != nil {
		log.Error("failed to mark job completed: %v", err)
		return err
	}
	log.Info("generated %d items", result.Count)
	return nil
}
