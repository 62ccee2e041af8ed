package repository

import (
	"context"

	"github.com/vytor/studyflash/internal/models"
)

// QuizRepository handles quiz and quiz attempt data access
type QuizRepository interface {
	Insert(ctx context.Context, quiz models.Quiz) (int64, error)
	Get(ctx context.Context, id, profileID int64) (*models.Quiz, error)
	List(ctx context.Context, profileID int64, limit, offset int) ([]models.Quiz, error)
	Delete(ctx context.Context, id, profileID int64) error
	InsertAttempt(ctx context.Context, attempt models.QuizAttempt) (int64, error)
}
