package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/studyflash/internal/models"
)

// MockJobRepository is a mock implementation of repository.JobRepository
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Insert(ctx context.Context, job models.GenerationJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) Get(ctx context.Context, id string, profileID int64) (*models.GenerationJob, error) {
	args := m.Called(ctx, id, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GenerationJob), args.Error(1)
}

func (m *MockJobRepository) MarkRunning(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockJobRepository) MarkCompleted(ctx context.Context, id string, resultCount int, quizID *int64, at time.Time) error {
	args := m.Called(ctx, id, resultCount, quizID, at)
	return args.Error(0)
}

func (m *MockJobRepository) MarkFailed(ctx context.Context, id string, reason string, at time.Time) error {
	args := m.Called(ctx, id, reason, at)
	return args.Error(0)
}

func (m *MockJobRepository) FailUnfinished(ctx context.Context, reason string, at time.Time) (int64, error) {
	args := m.Called(ctx, reason, at)
	return args.Get(0).(int64), args.Error(1)
}
