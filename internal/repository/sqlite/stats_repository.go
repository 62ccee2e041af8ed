package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Counts(ctx context.Context, profileID int64) (*models.StudyCounts, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching study counts: profile_id=%d", profileID)

	var c models.StudyCounts
	err := r.db.QueryRowContext(ctx, `
SELECT
    (SELECT COUNT(*) FROM notes WHERE profile_id = ?),
    (SELECT COUNT(*) FROM quizzes WHERE profile_id = ?),
    (SELECT COUNT(*) FROM flashcards WHERE profile_id = ?),
    (SELECT COUNT(*) FROM quiz_attempts WHERE profile_id = ?),
    (SELECT COUNT(*) FROM review_history rh JOIN flashcards f ON f.id = rh.flashcard_id WHERE f.profile_id = ?)
`, profileID, profileID, profileID, profileID, profileID).Scan(&c.Notes, &c.Quizzes, &c.Flashcards, &c.Attempts, &c.Reviews)
	if err != nil {
		log.Error("failed to fetch study counts: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *statsRepository) AttemptScores(ctx context.Context, profileID int64) ([]models.AttemptScore, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching attempt scores: profile_id=%d", profileID)

	rows, err := r.db.QueryContext(ctx, `
SELECT score, total_questions, completed_at
FROM quiz_attempts
WHERE profile_id = ?
ORDER BY completed_at ASC
`, profileID)
	if err != nil {
		log.Error("failed to query attempt scores: %v", err)
		return nil, err
	}
	defer rows.Close()

	var scores []models.AttemptScore
	for rows.Next() {
		var s models.AttemptScore
		if err := rows.Scan(&s.Score, &s.TotalQuestions, &s.CompletedAt); err != nil {
			log.Error("failed to scan attempt score: %v", err)
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

func (r *statsRepository) ActivityTimes(ctx context.Context, profileID int64, since time.Time) ([]time.Time, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching activity since %s: profile_id=%d", since.Format(time.RFC3339), profileID)

	queries := []string{
		`SELECT completed_at FROM quiz_attempts WHERE profile_id = ? AND completed_at >= ?`,
		`SELECT rh.reviewed_at FROM review_history rh JOIN flashcards f ON f.id = rh.flashcard_id WHERE f.profile_id = ? AND rh.reviewed_at >= ?`,
	}

	var times []time.Time
	for _, q := range queries {
		got, err := r.scanTimes(ctx, q, profileID, since.UTC())
		if err != nil {
			log.Error("failed to query activity: %v", err)
			return nil, err
		}
		times = append(times, got...)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times, nil
}

func (r *statsRepository) CreationTimes(ctx context.Context, profileID int64, since time.Time) (*models.CreationTimes, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching creation times since %s: profile_id=%d", since.Format(time.RFC3339), profileID)

	var c models.CreationTimes
	var err error
	c.Notes, err = r.scanTimes(ctx, `SELECT created_at FROM notes WHERE profile_id = ? AND created_at >= ? ORDER BY created_at ASC`, profileID, since.UTC())
	if err != nil {
		log.Error("failed to query note creation times: %v", err)
		return nil, err
	}
	c.Flashcards, err = r.scanTimes(ctx, `SELECT created_at FROM flashcards WHERE profile_id = ? AND created_at >= ? ORDER BY created_at ASC`, profileID, since.UTC())
	if err != nil {
		log.Error("failed to query flashcard creation times: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *statsRepository) scanTimes(ctx context.Context, query string, args ...any) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

func (r *statsRepository) FirstNoteAt(ctx context.Context, profileID int64) (*time.Time, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")

	var t time.Time
	err := r.db.QueryRowContext(ctx, `
SELECT created_at FROM notes WHERE profile_id = ? ORDER BY created_at ASC LIMIT 1
`, profileID).Scan(&t)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to fetch first note time: %v", err)
		return nil, err
	}
	return &t, nil
}

// Maturity buckets cards: new (never recalled), learning (interval < 21 days),
// mature (interval >= 21 days).
func (r *statsRepository) Maturity(ctx context.Context, profileID int64) (*models.FlashcardMaturity, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching flashcard maturity: profile_id=%d", profileID)

	var m models.FlashcardMaturity
	err := r.db.QueryRowContext(ctx, `
SELECT
    COALESCE(SUM(CASE WHEN repetitions = 0 THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN repetitions > 0 AND interval_days < 21 THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN repetitions > 0 AND interval_days >= 21 THEN 1 ELSE 0 END), 0)
FROM flashcards
WHERE profile_id = ?
`, profileID).Scan(&m.New, &m.Learning, &m.Mature)
	if err != nil {
		log.Error("failed to fetch maturity: %v", err)
		return nil, err
	}
	return &m, nil
}
