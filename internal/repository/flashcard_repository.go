package repository

import (
	"context"
	"time"

	"github.com/vytor/studyflash/internal/flashcard"
	"github.com/vytor/studyflash/internal/models"
)

// FlashcardRepository handles flashcard data access
type FlashcardRepository interface {
	Get(ctx context.Context, id, profileID int64) (*models.Flashcard, error)
	InsertBatch(ctx context.Context, cards []models.Flashcard) ([]int64, error)
	// UpdateReviewState writes state only if the stored next_review still equals
	// expectedNextReview, otherwise it returns ErrStaleState.
	UpdateReviewState(ctx context.Context, id int64, state flashcard.ReviewState, expectedNextReview time.Time) error
	ListByProfile(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error)
	CountDue(ctx context.Context, profileID int64, now time.Time) (int, error)
	Delete(ctx context.Context, id, profileID int64) error
	InsertReviewHistory(ctx context.Context, entry models.ReviewHistory) error
}
