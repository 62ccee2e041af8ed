package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

// QuizService handles quizzes and quiz attempts
type QuizService interface {
	ListQuizzes(ctx context.Context, profileID int64, limit, offset int) ([]models.Quiz, error)
	GetQuiz(ctx context.Context, profileID, id int64) (*models.Quiz, error)
	DeleteQuiz(ctx context.Context, profileID, id int64) error
	SubmitAttempt(ctx context.Context, profileID, quizID int64, answers []int) (*models.QuizAttempt, error)
}

type quizService struct {
	quizRepo    repository.QuizRepository
	profileRepo repository.ProfileRepository
	now         func() time.Time
}

// NewQuizService creates a new QuizService. A nil clock means time.Now.
func NewQuizService(quizRepo repository.QuizRepository, profileRepo repository.ProfileRepository, now func() time.Time) QuizService {
	if now == nil {
		now = time.Now
	}
	return &quizService{quizRepo: quizRepo, profileRepo: profileRepo, now: now}
}

func (s *quizService) ListQuizzes(ctx context.Context, profileID int64, limit, offset int) ([]models.Quiz, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing quizzes: profile_id=%d, limit=%d, offset=%d", profileID, limit, offset)

	if limit < 0 || offset < 0 {
		return nil, errors.NewValidationError("limit", "limit and offset cannot be negative")
	}

	quizzes, err := s.quizRepo.List(ctx, profileID, limit, offset)
	if err != nil {
		log.Error("failed to list quizzes: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return quizzes, nil
}

func (s *quizService) GetQuiz(ctx context.Context, profileID, id int64) (*models.Quiz, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting quiz: id=%d, profile_id=%d", id, profileID)

	quiz, err := s.quizRepo.Get(ctx, id, profileID)
	if err != nil {
		log.Error("failed to get quiz: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if quiz == nil {
		return nil, errors.NewNotFoundError("quiz", id)
	}

	return quiz, nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, profileID, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting quiz: id=%d, profile_id=%d", id, profileID)

	if err := s.quizRepo.Delete(ctx, id, profileID); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NewNotFoundError("quiz", id)
		}
		log.Error("failed to delete quiz: %v", err)
		return errors.NewInternalError(err)
	}

	return nil
}

// SubmitAttempt grades answers against the quiz and stores the attempt.
// answers holds one option index per question, or models.SkippedAnswer.
func (s *quizService) SubmitAttempt(ctx context.Context, profileID, quizID int64, answers []int) (*models.QuizAttempt, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting quiz attempt: quiz_id=%d, profile_id=%d", quizID, profileID)

	quiz, err := s.GetQuiz(ctx, profileID, quizID)
	if err != nil {
		return nil, err
	}

	results, score, err := gradeAttempt(quiz.Questions, answers)
	if err != nil {
		return nil, err
	}

	now := s.now()
	attempt := models.QuizAttempt{
		QuizID:         quiz.ID,
		ProfileID:      profileID,
		Answers:        answers,
		Score:          score,
		TotalQuestions: len(quiz.Questions),
		CompletedAt:    now,
	}
	id, err := s.quizRepo.InsertAttempt(ctx, attempt)
	if err != nil {
		log.Error("failed to insert quiz attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}
	attempt.ID = id
	attempt.Results = results

	if err := s.profileRepo.TouchLastStudy(ctx, profileID, now); err != nil {
		log.Warn("failed to update last study time: %v", err)
	}

	log.Info("quiz %d attempt scored %d/%d", quiz.ID, score, attempt.TotalQuestions)
	return &attempt, nil
}

func gradeAttempt(questions []models.QuizQuestion, answers []int) ([]models.QuestionResult, int, error) {
	if len(answers) != len(questions) {
		return nil, 0, errors.NewValidationError("answers",
			fmt.Sprintf("expected %d answers, got %d", len(questions), len(answers)))
	}

	results := make([]models.QuestionResult, len(questions))
	score := 0
	for i, q := range questions {
		a := answers[i]
		if a != models.SkippedAnswer && (a < 0 || a >= len(q.Options)) {
			return nil, 0, errors.NewValidationError("answers",
				fmt.Sprintf("answer %d is not an option of question %d", a, i+1))
		}
		correct := a == q.AnswerIndex
		if correct {
			score++
		}
		results[i] = models.QuestionResult{
			Index:       i,
			Selected:    a,
			AnswerIndex: q.AnswerIndex,
			Correct:     correct,
			Explanation: q.Explanation,
		}
	}
	return results, score, nil
}
