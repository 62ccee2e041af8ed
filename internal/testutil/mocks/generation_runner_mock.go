package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/worker"
)

// MockGenerationRunner is a mock implementation of worker.GenerationRunner
type MockGenerationRunner struct {
	mock.Mock
}

func (m *MockGenerationRunner) RunGeneration(ctx context.Context, job models.GenerationJob) (worker.GenerationResult, error) {
	args := m.Called(ctx, job)
	return args.Get(0).(worker.GenerationResult), args.Error(1)
}
