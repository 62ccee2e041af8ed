package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/studyflash/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueGeneration(ctx context.Context, profileID, noteID int64, kind models.JobKind) (*models.GenerationJob, error) {
	args := m.Called(ctx, profileID, noteID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GenerationJob), args.Error(1)
}
