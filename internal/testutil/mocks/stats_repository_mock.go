package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/studyflash/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Counts(ctx context.Context, profileID int64) (*models.StudyCounts, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudyCounts), args.Error(1)
}

func (m *MockStatsRepository) AttemptScores(ctx context.Context, profileID int64) ([]models.AttemptScore, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttemptScore), args.Error(1)
}

func (m *MockStatsRepository) ActivityTimes(ctx context.Context, profileID int64, since time.Time) ([]time.Time, error) {
	args := m.Called(ctx, profileID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockStatsRepository) CreationTimes(ctx context.Context, profileID int64, since time.Time) (*models.CreationTimes, error) {
	args := m.Called(ctx, profileID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CreationTimes), args.Error(1)
}

func (m *MockStatsRepository) FirstNoteAt(ctx context.Context, profileID int64) (*time.Time, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockStatsRepository) Maturity(ctx context.Context, profileID int64) (*models.FlashcardMaturity, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlashcardMaturity), args.Error(1)
}
