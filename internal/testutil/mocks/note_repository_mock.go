package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/studyflash/internal/models"
)

// MockNoteRepository is a mock implementation of repository.NoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Insert(ctx context.Context, note models.Note) (int64, error) {
	args := m.Called(ctx, note)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNoteRepository) Get(ctx context.Context, id, profileID int64) (*models.Note, error) {
	args := m.Called(ctx, id, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteRepository) List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Note), args.Error(1)
}

func (m *MockNoteRepository) Update(ctx context.Context, note models.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) UpdateSummary(ctx context.Context, id int64, summary string, at time.Time) error {
	args := m.Called(ctx, id, summary, at)
	return args.Error(0)
}

func (m *MockNoteRepository) Delete(ctx context.Context, id, profileID int64) error {
	args := m.Called(ctx, id, profileID)
	return args.Error(0)
}
