package worker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	apperrors "github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/testutil/mocks"
	"github.com/vytor/studyflash/internal/worker"
)

func generationJob() models.GenerationJob {
	return models.GenerationJob{ID: "abc", ProfileID: 1, NoteID: 2, Kind: models.JobKindQuiz, Status: models.JobStatusPending}
}

func TestGenerateJob_Completes(t *testing.T) {
	repo := new(mocks.MockJobRepository)
	runner := new(mocks.MockGenerationRunner)
	quizID := int64(9)

	repo.On("MarkRunning", mock.Anything, "abc", mock.Anything).Return(nil)
	runner.On("RunGeneration", mock.Anything, generationJob()).Return(worker.GenerationResult{Count: 5, QuizID: &quizID}, nil)
	repo.On("MarkCompleted", mock.Anything, "abc", 5, &quizID, mock.Anything).Return(nil)

	job := &worker.GenerateJob{Runner: runner, Jobs: repo, Job: generationJob()}
	assert.Equal(t, "generate_quiz", job.Name())
	assert.NoError(t, job.Run(context.Background()))

	repo.AssertExpectations(t)
	runner.AssertExpectations(t)
}

func TestGenerateJob_RecordsFailure(t *testing.T) {
	repo := new(mocks.MockJobRepository)
	runner := new(mocks.MockGenerationRunner)
	cause := apperrors.NewUpstreamError("AI provider returned an unusable response", errors.New("bad json"))

	repo.On("MarkRunning", mock.Anything, "abc", mock.Anything).Return(nil)
	runner.On("RunGeneration", mock.Anything, mock.Anything).Return(worker.GenerationResult{}, cause)
	repo.On("MarkFailed", mock.Anything, "abc", "AI provider returned an unusable response", mock.Anything).Return(nil)

	job := &worker.GenerateJob{Runner: runner, Jobs: repo, Job: generationJob()}
	assert.ErrorIs(t, job.Run(context.Background()), cause)

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateJob_CancelledByShutdown(t *testing.T) {
	repo := new(mocks.MockJobRepository)
	runner := new(mocks.MockGenerationRunner)
	ctx, cancel := context.WithCancel(context.Background())

	repo.On("MarkRunning", mock.Anything, "abc", mock.Anything).Return(nil)
	runner.On("RunGeneration", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(worker.GenerationResult{}, context.Canceled)
	repo.On("MarkFailed", mock.Anything, "abc", "cancelled by server shutdown", mock.Anything).Return(nil)

	job := &worker.GenerateJob{Runner: runner, Jobs: repo, Job: generationJob()}
	assert.ErrorIs(t, job.Run(ctx), context.Canceled)
	repo.AssertExpectations(t)
}
