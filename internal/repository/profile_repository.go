package repository

import (
	"context"
	"time"

	"github.com/vytor/studyflash/internal/models"
)

// ProfileRepository handles profile data access
type ProfileRepository interface {
	Get(ctx context.Context, id int64) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, username, displayName string, createdAt time.Time) (*models.Profile, error)
	UpdateDisplayName(ctx context.Context, id int64, displayName string) error
	TouchLastStudy(ctx context.Context, id int64, t time.Time) error
	Delete(ctx context.Context, id int64) error
}
