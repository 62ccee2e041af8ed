package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository implementation
func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, username, display_name, created_at, last_study_at`

func scanProfile(row interface{ Scan(...any) error }, p *models.Profile) error {
	return row.Scan(&p.ID, &p.Username, &p.DisplayName, &p.CreatedAt, &p.LastStudyAt)
}

// Upsert creates the profile or returns the existing one. A non-empty display
// name replaces the stored one.
func (r *profileRepository) Upsert(ctx context.Context, username, displayName string, createdAt time.Time) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("upserting profile for username: %s", username)

	created, err := dbTime(createdAt)
	if err != nil {
		return nil, err
	}
	var p models.Profile
	err = tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO profiles (username, display_name, created_at)
VALUES (?, ?, ?)
ON CONFLICT(username) DO UPDATE SET
    display_name = CASE WHEN excluded.display_name <> '' THEN excluded.display_name ELSE profiles.display_name END
`, username, displayName, created); err != nil {
			return err
		}
		return scanProfile(tx.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE username = ?`, username), &p)
	})
	if err != nil {
		log.Error("failed to upsert profile: %v", err)
		return nil, err
	}
	log.Debug("profile upserted: id=%d", p.ID)
	return &p, nil
}

func (r *profileRepository) UpdateDisplayName(ctx context.Context, id int64, displayName string) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("updating display name: profile_id=%d", id)

	res, err := r.db.ExecContext(ctx, `UPDATE profiles SET display_name = ? WHERE id = ?`, displayName, id)
	if err != nil {
		log.Error("failed to update display name: %v", err)
		return err
	}
	return requireAffected(res)
}

func (r *profileRepository) TouchLastStudy(ctx context.Context, id int64, t time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("updating last study time: profile_id=%d", id)

	studied, err := dbTime(t)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `UPDATE profiles SET last_study_at = ? WHERE id = ?`, studied, id)
	if err != nil {
		log.Error("failed to update last study time: %v", err)
	}
	return err
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("listing profiles")

	rows, err := r.db.QueryContext(ctx, `
SELECT `+profileColumns+`
FROM profiles
ORDER BY created_at ASC, id ASC
`)
	if err != nil {
		log.Error("failed to list profiles: %v", err)
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := scanProfile(rows, &p); err != nil {
			log.Error("failed to scan profile row: %v", err)
			return nil, err
		}
		profiles = append(profiles, p)
	}

	log.Debug("found %d profiles", len(profiles))
	return profiles, rows.Err()
}

func (r *profileRepository) Get(ctx context.Context, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("getting profile: id=%d", id)

	var p models.Profile
	err := scanProfile(r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id), &p)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("profile not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	return &p, nil
}

// Delete removes the profile. Notes, flashcards, review history, quizzes,
// attempts and jobs go with it through ON DELETE CASCADE.
func (r *profileRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("deleting profile and related data: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete profile %d: %v", id, err)
		return err
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	log.Debug("profile %d deleted with cascading data", id)
	return nil
}
