package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

type jobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new JobRepository implementation
func NewJobRepository(db *sql.DB) repository.JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Insert(ctx context.Context, j models.GenerationJob) error {
	log := logger.FromContext(ctx).WithPrefix("job_repo")
	log.Debug("inserting job: id=%s, kind=%s, note_id=%d", j.ID, j.Kind, j.NoteID)

	created, err := dbTime(j.CreatedAt)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO generation_jobs (id, profile_id, note_id, kind, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, j.ID, j.ProfileID, j.NoteID, string(j.Kind), string(j.Status), created, created)
	if err != nil {
		log.Error("failed to insert job: %v", err)
	}
	return err
}

func (r *jobRepository) Get(ctx context.Context, id string, profileID int64) (*models.GenerationJob, error) {
	log := logger.FromContext(ctx).WithPrefix("job_repo")
	log.Debug("getting job: id=%s", id)

	var (
		j      models.GenerationJob
		kind   string
		status string
		quizID sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, `
SELECT id, profile_id, note_id, kind, status, result_count, quiz_id, error, created_at, updated_at
FROM generation_jobs
WHERE id = ? AND profile_id = ?
`, id, profileID).Scan(&j.ID, &j.ProfileID, &j.NoteID, &kind, &status, &j.ResultCount, &quizID, &j.Error, &j.CreatedAt, &j.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("job not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get job: %v", err)
		return nil, err
	}
	j.Kind = models.JobKind(kind)
	j.Status = models.JobStatus(status)
	if quizID.Valid {
		j.QuizID = &quizID.Int64
	}
	return &j, nil
}

func (r *jobRepository) MarkRunning(ctx context.Context, id string, at time.Time) error {
	return r.setStatus(ctx, id, models.JobStatusRunning, "", at)
}

func (r *jobRepository) MarkFailed(ctx context.Context, id string, reason string, at time.Time) error {
	return r.setStatus(ctx, id, models.JobStatusFailed, reason, at)
}

func (r *jobRepository) setStatus(ctx context.Context, id string, status models.JobStatus, reason string, at time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("job_repo")
	log.Debug("job %s -> %s", id, status)

	updated, err := dbTime(at)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE generation_jobs SET status = ?, error = ?, updated_at = ? WHERE id = ?
`, string(status), reason, updated, id)
	if err != nil {
		log.Error("failed to update job status: %v", err)
		return err
	}
	return requireAffected(res)
}

func (r *jobRepository) MarkCompleted(ctx context.Context, id string, resultCount int, quizID *int64, at time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("job_repo")
	log.Debug("job %s completed with %d results", id, resultCount)

	updated, err := dbTime(at)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE generation_jobs
SET status = ?, result_count = ?, quiz_id = ?, error = '', updated_at = ?
WHERE id = ?
`, string(models.JobStatusCompleted), resultCount, quizID, updated, id)
	if err != nil {
		log.Error("failed to complete job: %v", err)
		return err
	}
	return requireAffected(res)
}

func (r *jobRepository) FailUnfinished(ctx context.Context, reason string, at time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("job_repo")

	updated, err := dbTime(at)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE generation_jobs
SET status = ?, error = ?, updated_at = ?
WHERE status IN (?, ?)
`, string(models.JobStatusFailed), reason, updated, string(models.JobStatusPending), string(models.JobStatusRunning))
	if err != nil {
		log.Error("failed to fail unfinished jobs: %v", err)
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Warn("marked %d unfinished jobs as failed", n)
	}
	return n, nil
}
