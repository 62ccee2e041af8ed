package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/services"
	"github.com/vytor/studyflash/internal/testutil/mocks"
)

func sampleQuiz() *models.Quiz {
	return &models.Quiz{
		ID:        21,
		ProfileID: 1,
		NoteID:    3,
		Title:     "Quiz: Cells",
		Questions: []models.QuizQuestion{
			{Question: "Powerhouse?", Options: []string{"Nucleus", "Mitochondria", "Ribosome"}, AnswerIndex: 1, Explanation: "ATP"},
			{Question: "Protein factory?", Options: []string{"Ribosome", "Golgi"}, AnswerIndex: 0},
			{Question: "Control centre?", Options: []string{"Vacuole", "Nucleus"}, AnswerIndex: 1},
		},
	}
}

func TestSubmitAttempt_Scores(t *testing.T) {
	quizzes := new(mocks.MockQuizRepository)
	profiles := new(mocks.MockProfileRepository)
	svc := services.NewQuizService(quizzes, profiles, fixedClock)

	quizzes.On("Get", mock.Anything, int64(21), int64(1)).Return(sampleQuiz(), nil)
	quizzes.On("InsertAttempt", mock.Anything, mock.MatchedBy(func(a models.QuizAttempt) bool {
		return a.QuizID == 21 && a.Score == 1 && a.TotalQuestions == 3 && a.CompletedAt.Equal(reviewNow)
	})).Return(int64(5), nil)
	profiles.On("TouchLastStudy", mock.Anything, int64(1), reviewNow).Return(nil)

	attempt, err := svc.SubmitAttempt(context.Background(), 1, 21, []int{1, 1, models.SkippedAnswer})
	require.NoError(t, err)
	assert.Equal(t, int64(5), attempt.ID)
	assert.Equal(t, 1, attempt.Score)
	require.Len(t, attempt.Results, 3)
	assert.True(t, attempt.Results[0].Correct)
	assert.Equal(t, "ATP", attempt.Results[0].Explanation)
	assert.False(t, attempt.Results[1].Correct)
	assert.Equal(t, models.SkippedAnswer, attempt.Results[2].Selected)
	assert.False(t, attempt.Results[2].Correct)

	quizzes.AssertExpectations(t)
	profiles.AssertExpectations(t)
}

func TestSubmitAttempt_RejectsBadAnswers(t *testing.T) {
	quizzes := new(mocks.MockQuizRepository)
	svc := services.NewQuizService(quizzes, new(mocks.MockProfileRepository), fixedClock)
	quizzes.On("Get", mock.Anything, int64(21), int64(1)).Return(sampleQuiz(), nil)

	for name, answers := range map[string][]int{
		"too few":      {1, 0},
		"too many":     {1, 0, 1, 0},
		"out of range": {1, 2, 1},
		"negative":     {1, 0, -2},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.SubmitAttempt(context.Background(), 1, 21, answers)
			requireAppStatus(t, err, http.StatusBadRequest)
		})
	}
	quizzes.AssertNotCalled(t, "InsertAttempt", mock.Anything, mock.Anything)
}

func TestSubmitAttempt_UnknownQuiz(t *testing.T) {
	quizzes := new(mocks.MockQuizRepository)
	svc := services.NewQuizService(quizzes, new(mocks.MockProfileRepository), fixedClock)
	quizzes.On("Get", mock.Anything, int64(21), int64(2)).Return(nil, nil)

	_, err := svc.SubmitAttempt(context.Background(), 2, 21, []int{0})
	requireAppStatus(t, err, http.StatusNotFound)
}
