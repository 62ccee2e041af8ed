package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/studyflash/internal/flashcard"
	"github.com/vytor/studyflash/internal/models"
)

// MockFlashcardRepository is a mock implementation of repository.FlashcardRepository
type MockFlashcardRepository struct {
	mock.Mock
}

func (m *MockFlashcardRepository) Get(ctx context.Context, id, profileID int64) (*models.Flashcard, error) {
	args := m.Called(ctx, id, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) InsertBatch(ctx context.Context, cards []models.Flashcard) ([]int64, error) {
	args := m.Called(ctx, cards)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockFlashcardRepository) UpdateReviewState(ctx context.Context, id int64, state flashcard.ReviewState, expectedNextReview time.Time) error {
	args := m.Called(ctx, id, state, expectedNextReview)
	return args.Error(0)
}

func (m *MockFlashcardRepository) ListByProfile(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) CountDue(ctx context.Context, profileID int64, now time.Time) (int, error) {
	args := m.Called(ctx, profileID, now)
	return args.Int(0), args.Error(1)
}

func (m *MockFlashcardRepository) Delete(ctx context.Context, id, profileID int64) error {
	args := m.Called(ctx, id, profileID)
	return args.Error(0)
}

func (m *MockFlashcardRepository) InsertReviewHistory(ctx context.Context, entry models.ReviewHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
