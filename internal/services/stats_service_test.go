package services_test

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/services"
	"github.com/vytor/studyflash/internal/testutil/mocks"
)

func TestDashboard(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepository)
	cards := new(mocks.MockFlashcardRepository)
	svc := services.NewStatsService(statsRepo, cards, 3, fixedClock)

	firstNote := reviewNow.AddDate(0, 0, -14)
	statsRepo.On("Counts", mock.Anything, int64(1)).Return(&models.StudyCounts{Notes: 6, Quizzes: 2, Flashcards: 10, Attempts: 2, Reviews: 4}, nil)
	statsRepo.On("Maturity", mock.Anything, int64(1)).Return(&models.FlashcardMaturity{New: 5, Learning: 4, Mature: 1}, nil)
	statsRepo.On("AttemptScores", mock.Anything, int64(1)).Return([]models.AttemptScore{
		{Score: 0, TotalQuestions: 5, CompletedAt: reviewNow.AddDate(0, 0, -1)},
		{Score: 4, TotalQuestions: 5, CompletedAt: reviewNow.Add(-time.Hour)},
	}, nil)
	statsRepo.On("ActivityTimes", mock.Anything, int64(1), reviewNow.AddDate(0, 0, -366)).Return([]time.Time{
		reviewNow.AddDate(0, 0, -1),
		reviewNow.Add(-time.Hour),
	}, nil)
	statsRepo.On("FirstNoteAt", mock.Anything, int64(1)).Return(&firstNote, nil)
	statsRepo.On("CreationTimes", mock.Anything, int64(1), reviewNow.AddDate(0, 0, -7)).Return(&models.CreationTimes{
		Notes:      []time.Time{reviewNow.AddDate(0, 0, -1)},
		Flashcards: []time.Time{reviewNow.Add(-2 * time.Hour), reviewNow.Add(-2 * time.Hour)},
	}, nil)
	cards.On("CountDue", mock.Anything, int64(1), reviewNow).Return(7, nil)

	got, err := svc.Dashboard(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, got.Achievements, 8)
	assert.Equal(t, "first_note", got.Achievements[0].ID)
	assert.True(t, got.Achievements[0].Unlocked)
	assert.False(t, got.Achievements[1].Unlocked, "note_master needs 10 notes")
	assert.Equal(t, 6, got.Achievements[1].Progress)

	require.Len(t, got.Performance, 7)
	today, yesterday := got.Performance[6], got.Performance[5]
	assert.Equal(t, 80.0, today.QuizScore)
	assert.Equal(t, 1, today.Sessions)
	assert.Equal(t, 2, today.Flashcards)
	assert.Equal(t, 0.0, yesterday.QuizScore)
	assert.Equal(t, 1, yesterday.Sessions)
	assert.Equal(t, 1, yesterday.Notes)

	got.Achievements, got.Performance = nil, nil
	assert.Equal(t, &models.DashboardStats{
		Counts:           models.StudyCounts{Notes: 6, Quizzes: 2, Flashcards: 10, Attempts: 2, Reviews: 4},
		DueFlashcards:    7,
		AverageScore:     40,
		CompletionRate:   50,
		LearningVelocity: 3,
		StudyMinutes:     20,
		CurrentStreak:    2,
		LongestStreak:    2,
		TodaySessions:    1,
		DailyGoal:        3,
		TodayProgress:    33,
		Maturity:         models.FlashcardMaturity{New: 5, Learning: 4, Mature: 1},
	}, got)
}

func TestDashboard_RepositoryFailure(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepository)
	cards := new(mocks.MockFlashcardRepository)
	svc := services.NewStatsService(statsRepo, cards, 3, fixedClock)

	statsRepo.On("Counts", mock.Anything, int64(1)).Return(nil, stderrors.New("db closed"))
	statsRepo.On("Maturity", mock.Anything, int64(1)).Return(&models.FlashcardMaturity{}, nil).Maybe()
	statsRepo.On("AttemptScores", mock.Anything, int64(1)).Return([]models.AttemptScore{}, nil).Maybe()
	statsRepo.On("ActivityTimes", mock.Anything, int64(1), mock.Anything).Return([]time.Time{}, nil).Maybe()
	statsRepo.On("FirstNoteAt", mock.Anything, int64(1)).Return(nil, nil).Maybe()
	statsRepo.On("CreationTimes", mock.Anything, int64(1), mock.Anything).Return(&models.CreationTimes{}, nil).Maybe()
	cards.On("CountDue", mock.Anything, int64(1), mock.Anything).Return(0, nil).Maybe()

	_, err := svc.Dashboard(context.Background(), 1)
	requireAppStatus(t, err, http.StatusInternalServerError)
}
