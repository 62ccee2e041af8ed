package repository

import (
	"context"
	"time"

	"github.com/vytor/studyflash/internal/models"
)

// StatsRepository handles statistics data access
type StatsRepository interface {
	Counts(ctx context.Context, profileID int64) (*models.StudyCounts, error)
	AttemptScores(ctx context.Context, profileID int64) ([]models.AttemptScore, error)
	// ActivityTimes returns quiz completions and flashcard reviews at or after since.
	ActivityTimes(ctx context.Context, profileID int64, since time.Time) ([]time.Time, error)
	// CreationTimes returns note and flashcard creation times at or after since.
	CreationTimes(ctx context.Context, profileID int64, since time.Time) (*models.CreationTimes, error)
	FirstNoteAt(ctx context.Context, profileID int64) (*time.Time, error)
	Maturity(ctx context.Context, profileID int64) (*models.FlashcardMaturity, error)
}
