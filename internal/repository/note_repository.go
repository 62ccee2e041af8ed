package repository

import (
	"context"
	"time"

	"github.com/vytor/studyflash/internal/models"
)

// NoteRepository handles note data access
type NoteRepository interface {
	Insert(ctx context.Context, note models.Note) (int64, error)
	Get(ctx context.Context, id, profileID int64) (*models.Note, error)
	List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	Update(ctx context.Context, note models.Note) error
	UpdateSummary(ctx context.Context, id int64, summary string, at time.Time) error
	Delete(ctx context.Context, id, profileID int64) error
}
