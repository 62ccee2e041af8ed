package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/studyflash/internal/flashcard"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

type flashcardRepository struct {
	db *sql.DB
}

// NewFlashcardRepository creates a new FlashcardRepository implementation
func NewFlashcardRepository(db *sql.DB) repository.FlashcardRepository {
	return &flashcardRepository{db: db}
}

var flashcardColumns = []string{
	"id", "profile_id", "note_id", "front", "back",
	"interval_days", "ease_factor", "repetitions", "next_review", "created_at",
}

func scanFlashcard(row interface{ Scan(...any) error }, c *models.Flashcard) error {
	return row.Scan(&c.ID, &c.ProfileID, &c.NoteID, &c.Front, &c.Back,
		&c.IntervalDays, &c.EaseFactor, &c.Repetitions, &c.NextReviewAt, &c.CreatedAt)
}

func (r *flashcardRepository) Get(ctx context.Context, id, profileID int64) (*models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("getting flashcard: id=%d, profile_id=%d", id, profileID)

	query, args, err := sqlBuilder.Select(flashcardColumns...).From("flashcards").
		Where(squirrel.Eq{"id": id, "profile_id": profileID}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var c models.Flashcard
	err = scanFlashcard(r.db.QueryRowContext(ctx, query, args...), &c)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("flashcard not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *flashcardRepository) InsertBatch(ctx context.Context, cards []models.Flashcard) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("inserting %d flashcards", len(cards))

	if len(cards) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(cards))
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO flashcards (profile_id, note_id, front, back, interval_days, ease_factor, repetitions, next_review, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, c := range cards {
			next, err := dbTime(c.NextReviewAt)
			if err != nil {
				return err
			}
			created, err := dbTime(c.CreatedAt)
			if err != nil {
				return err
			}
			res, err := stmt.ExecContext(ctx, c.ProfileID, c.NoteID, c.Front, c.Back,
				c.IntervalDays, c.EaseFactor, c.Repetitions, next, created)
			if err != nil {
				return err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to insert flashcards: %v", err)
		return nil, err
	}
	log.Debug("inserted %d flashcards", len(ids))
	return ids, nil
}

func (r *flashcardRepository) UpdateReviewState(ctx context.Context, id int64, s flashcard.ReviewState, expectedNextReview time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("updating review state: id=%d, interval=%d, ease=%.2f, reps=%d", id, s.IntervalDays, s.EaseFactor, s.Repetitions)

	next, err := dbTime(s.NextReviewAt)
	if err != nil {
		return err
	}
	return tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE flashcards
SET interval_days = ?, ease_factor = ?, repetitions = ?, next_review = ?
WHERE id = ? AND next_review = ?
`, s.IntervalDays, s.EaseFactor, s.Repetitions, next, id, expectedNextReview.UTC())
		if err != nil {
			log.Error("failed to update flashcard: %v", err)
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 1 {
			return nil
		}

		var exists int
		err = tx.QueryRowContext(ctx, `SELECT 1 FROM flashcards WHERE id = ?`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		if err != nil {
			return err
		}
		log.Warn("stale review state for flashcard %d", id)
		return repository.ErrStaleState
	})
}

func (r *flashcardRepository) ListByProfile(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("listing flashcards: profile_id=%d, note_id=%d, due_only=%t", filter.ProfileID, filter.NoteID, filter.DueBefore != nil)

	query := sqlBuilder.Select(flashcardColumns...).From("flashcards").
		Where(squirrel.Eq{"profile_id": filter.ProfileID})
	if filter.NoteID != 0 {
		query = query.Where(squirrel.Eq{"note_id": filter.NoteID})
	}
	if filter.DueBefore != nil {
		query = query.Where(squirrel.LtOrEq{"next_review": filter.DueBefore.UTC()})
		query = query.OrderBy("next_review ASC", "id ASC")
	} else {
		query = query.OrderBy("created_at ASC", "id ASC")
	}

	limit, offset := pageBounds(filter.Limit, filter.Offset, 200)
	query = query.Limit(limit).Offset(offset)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query flashcards: %v", err)
		return nil, err
	}
	defer rows.Close()

	cards := []models.Flashcard{}
	for rows.Next() {
		var c models.Flashcard
		if err := scanFlashcard(rows, &c); err != nil {
			log.Error("failed to scan flashcard row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d flashcards", len(cards))
	return cards, rows.Err()
}

func (r *flashcardRepository) CountDue(ctx context.Context, profileID int64, now time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM flashcards WHERE profile_id = ? AND next_review <= ?
`, profileID, now.UTC()).Scan(&count)
	if err != nil {
		log.Error("failed to count due flashcards: %v", err)
		return 0, err
	}
	log.Debug("profile %d has %d due flashcards", profileID, count)
	return count, nil
}

func (r *flashcardRepository) Delete(ctx context.Context, id, profileID int64) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("deleting flashcard: id=%d, profile_id=%d", id, profileID)

	res, err := r.db.ExecContext(ctx, `DELETE FROM flashcards WHERE id = ? AND profile_id = ?`, id, profileID)
	if err != nil {
		log.Error("failed to delete flashcard: %v", err)
		return err
	}
	return requireAffected(res)
}

func (r *flashcardRepository) InsertReviewHistory(ctx context.Context, h models.ReviewHistory) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("inserting review history: flashcard_id=%d, rating=%s, time=%.2fs", h.FlashcardID, h.Rating, h.TimeSeconds)

	reviewed, err := dbTime(h.ReviewedAt)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO review_history (flashcard_id, rating, interval_days, ease_factor, repetitions, time_seconds, reviewed_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, h.FlashcardID, h.Rating.String(), h.IntervalDays, h.EaseFactor, h.Repetitions, h.TimeSeconds, reviewed)
	if err != nil {
		log.Error("failed to insert review history: %v", err)
	}
	return err
}
