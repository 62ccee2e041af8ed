package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

type quizRepository struct {
	db *sql.DB
}

// NewQuizRepository creates a new QuizRepository implementation
func NewQuizRepository(db *sql.DB) repository.QuizRepository {
	return &quizRepository{db: db}
}

var quizColumns = []string{"q.id", "q.profile_id", "q.note_id", "n.title", "q.title", "q.questions", "q.created_at"}

func scanQuiz(row interface{ Scan(...any) error }, q *models.Quiz) error {
	var questions string
	if err := row.Scan(&q.ID, &q.ProfileID, &q.NoteID, &q.NoteTitle, &q.Title, &questions, &q.CreatedAt); err != nil {
		return err
	}
	return json.Unmarshal([]byte(questions), &q.Questions)
}

func (r *quizRepository) Insert(ctx context.Context, q models.Quiz) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("inserting quiz: note_id=%d, questions=%d", q.NoteID, len(q.Questions))

	questions, err := json.Marshal(q.Questions)
	if err != nil {
		return 0, err
	}
	created, err := dbTime(q.CreatedAt)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO quizzes (profile_id, note_id, title, questions, created_at)
VALUES (?, ?, ?, ?, ?)
`, q.ProfileID, q.NoteID, q.Title, string(questions), created)
	if err != nil {
		log.Error("failed to insert quiz: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get quiz id: %v", err)
		return 0, err
	}
	log.Debug("quiz inserted: id=%d", id)
	return id, nil
}

func (r *quizRepository) Get(ctx context.Context, id, profileID int64) (*models.Quiz, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("getting quiz: id=%d, profile_id=%d", id, profileID)

	query, args, err := sqlBuilder.Select(quizColumns...).
		From("quizzes q").
		Join("notes n ON n.id = q.note_id").
		Where(squirrel.Eq{"q.id": id, "q.profile_id": profileID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var q models.Quiz
	err = scanQuiz(r.db.QueryRowContext(ctx, query, args...), &q)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("quiz not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get quiz: %v", err)
		return nil, err
	}
	return &q, nil
}

func (r *quizRepository) List(ctx context.Context, profileID int64, limit, offset int) ([]models.Quiz, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("listing quizzes: profile_id=%d", profileID)

	lim, off := pageBounds(limit, offset, 100)
	query, args, err := sqlBuilder.Select(quizColumns...).
		From("quizzes q").
		Join("notes n ON n.id = q.note_id").
		Where(squirrel.Eq{"q.profile_id": profileID}).
		OrderBy("q.created_at DESC", "q.id DESC").
		Limit(lim).Offset(off).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list quizzes: %v", err)
		return nil, err
	}
	defer rows.Close()

	quizzes := []models.Quiz{}
	for rows.Next() {
		var q models.Quiz
		if err := scanQuiz(rows, &q); err != nil {
			log.Error("failed to scan quiz row: %v", err)
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	log.Debug("found %d quizzes", len(quizzes))
	return quizzes, rows.Err()
}

func (r *quizRepository) Delete(ctx context.Context, id, profileID int64) error {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("deleting quiz: id=%d, profile_id=%d", id, profileID)

	res, err := r.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ? AND profile_id = ?`, id, profileID)
	if err != nil {
		log.Error("failed to delete quiz: %v", err)
		return err
	}
	return requireAffected(res)
}

func (r *quizRepository) InsertAttempt(ctx context.Context, a models.QuizAttempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("inserting attempt: quiz_id=%d, score=%d/%d", a.QuizID, a.Score, a.TotalQuestions)

	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return 0, err
	}
	completed, err := dbTime(a.CompletedAt)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO quiz_attempts (quiz_id, profile_id, answers, score, total_questions, completed_at)
VALUES (?, ?, ?, ?, ?, ?)
`, a.QuizID, a.ProfileID, string(answers), a.Score, a.TotalQuestions, completed)
	if err != nil {
		log.Error("failed to insert attempt: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get attempt id: %v", err)
		return 0, err
	}
	return id, nil
}
