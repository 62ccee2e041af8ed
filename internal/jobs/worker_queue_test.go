package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/studyflash/internal/jobs"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/testutil/mocks"
	"github.com/vytor/studyflash/internal/worker"
)

func TestWorkerQueue_EnqueueRunsJob(t *testing.T) {
	repo := new(mocks.MockJobRepository)
	runner := new(mocks.MockGenerationRunner)
	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	defer pool.Stop()

	completed := make(chan struct{})
	pending := mock.MatchedBy(func(j models.GenerationJob) bool {
		return j.Status == models.JobStatusPending && j.Kind == models.JobKindFlashcards && j.NoteID == 7
	})
	repo.On("Insert", mock.Anything, pending).Return(nil)
	repo.On("MarkRunning", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	runner.On("RunGeneration", mock.Anything, mock.Anything).Return(worker.GenerationResult{Count: 8}, nil)
	repo.On("MarkCompleted", mock.Anything, mock.Anything, 8, (*int64)(nil), mock.Anything).
		Run(func(mock.Arguments) { close(completed) }).
		Return(nil)

	q := jobs.NewWorkerQueue(pool, repo, runner, time.Minute)
	job, err := q.EnqueueGeneration(context.Background(), 1, 7, models.JobKindFlashcards)
	require.NoError(t, err)

	_, parseErr := uuid.Parse(job.ID)
	assert.NoError(t, parseErr, "job ids are uuids")
	assert.Equal(t, models.JobStatusPending, job.Status)

	select {
	case <-completed:
	case <-time.After(2 * time.Second):
		t.Fatal("job never completed")
	}
}

func TestWorkerQueue_FullQueueFailsJob(t *testing.T) {
	repo := new(mocks.MockJobRepository)
	runner := new(mocks.MockGenerationRunner)
	pool := worker.NewPool(1, 1)
	pool.Stop() // a stopped pool rejects everything

	repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	repo.On("MarkFailed", mock.Anything, mock.Anything, worker.ErrPoolStopped.Error(), mock.Anything).Return(nil)

	q := jobs.NewWorkerQueue(pool, repo, runner, time.Minute)
	job, err := q.EnqueueGeneration(context.Background(), 1, 7, models.JobKindQuiz)
	assert.ErrorIs(t, err, worker.ErrPoolStopped)
	assert.Nil(t, job)
	repo.AssertExpectations(t)
}

func TestWorkerQueue_Recover(t *testing.T) {
	repo := new(mocks.MockJobRepository)
	repo.On("FailUnfinished", mock.Anything, "interrupted by server restart", mock.AnythingOfType("time.Time")).Return(int64(2), nil)

	q := jobs.NewWorkerQueue(worker.NewPool(1, 1), repo, new(mocks.MockGenerationRunner), 0)
	assert.NoError(t, q.Recover(context.Background()))
	repo.AssertExpectations(t)
}
