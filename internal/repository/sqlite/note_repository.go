package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

type noteRepository struct {
	db *sql.DB
}

// NewNoteRepository creates a new NoteRepository implementation
func NewNoteRepository(db *sql.DB) repository.NoteRepository {
	return &noteRepository{db: db}
}

var noteColumns = []string{"id", "profile_id", "title", "content", "summary", "created_at", "updated_at"}

func scanNote(row interface{ Scan(...any) error }, n *models.Note) error {
	return row.Scan(&n.ID, &n.ProfileID, &n.Title, &n.Content, &n.Summary, &n.CreatedAt, &n.UpdatedAt)
}

func (r *noteRepository) Insert(ctx context.Context, n models.Note) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("inserting note: profile_id=%d, title=%q", n.ProfileID, n.Title)

	created, err := dbTime(n.CreatedAt)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO notes (profile_id, title, content, summary, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
`, n.ProfileID, n.Title, n.Content, n.Summary, created, created)
	if err != nil {
		log.Error("failed to insert note: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get note id: %v", err)
		return 0, err
	}
	log.Debug("note inserted: id=%d", id)
	return id, nil
}

func (r *noteRepository) Get(ctx context.Context, id, profileID int64) (*models.Note, error) {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("getting note: id=%d, profile_id=%d", id, profileID)

	query, args, err := sqlBuilder.Select(noteColumns...).From("notes").
		Where(squirrel.Eq{"id": id, "profile_id": profileID}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var n models.Note
	err = scanNote(r.db.QueryRowContext(ctx, query, args...), &n)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("note not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get note: %v", err)
		return nil, err
	}
	return &n, nil
}

func (r *noteRepository) List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("listing notes with filter: profile_id=%d, search=%q, sort=%s", filter.ProfileID, filter.Search, filter.Sort)

	query := sqlBuilder.Select(noteColumns...).From("notes").
		Where(squirrel.Eq{"profile_id": filter.ProfileID})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.Like{"title": pattern},
			squirrel.Like{"content": pattern},
		})
	}

	// Only whitelisted orderings reach the SQL.
	switch filter.Sort {
	case models.NoteSortOldest:
		query = query.OrderBy("created_at ASC", "id ASC")
	case models.NoteSortTitle:
		query = query.OrderBy("title COLLATE NOCASE ASC", "id ASC")
	default:
		query = query.OrderBy("created_at DESC", "id DESC")
	}

	limit, offset := pageBounds(filter.Limit, filter.Offset, 100)
	query = query.Limit(limit).Offset(offset)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list notes: %v", err)
		return nil, err
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := scanNote(rows, &n); err != nil {
			log.Error("failed to scan note row: %v", err)
			return nil, err
		}
		notes = append(notes, n)
	}
	log.Debug("found %d notes", len(notes))
	return notes, rows.Err()
}

func (r *noteRepository) Update(ctx context.Context, n models.Note) error {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("updating note: id=%d", n.ID)

	updated, err := dbTime(n.UpdatedAt)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE notes
SET title = ?, content = ?, updated_at = ?
WHERE id = ? AND profile_id = ?
`, n.Title, n.Content, updated, n.ID, n.ProfileID)
	if err != nil {
		log.Error("failed to update note: %v", err)
		return err
	}
	return requireAffected(res)
}

func (r *noteRepository) UpdateSummary(ctx context.Context, id int64, summary string, at time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("storing summary: note_id=%d, length=%d", id, len(summary))

	updated, err := dbTime(at)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE notes SET summary = ?, updated_at = ? WHERE id = ?`, summary, updated, id)
	if err != nil {
		log.Error("failed to store summary: %v", err)
		return err
	}
	return requireAffected(res)
}

// Delete removes the note together with its flashcards and quizzes.
func (r *noteRepository) Delete(ctx context.Context, id, profileID int64) error {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("deleting note: id=%d, profile_id=%d", id, profileID)

	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ? AND profile_id = ?`, id, profileID)
	if err != nil {
		log.Error("failed to delete note: %v", err)
		return err
	}
	return requireAffected(res)
}
