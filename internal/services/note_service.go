package services

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const maxNoteTitleRunes = 200

// NoteService handles note-related business logic
type NoteService interface {
	CreateNote(ctx context.Context, profileID int64, title, content string) (*models.Note, error)
	GetNote(ctx context.Context, profileID, id int64) (*models.Note, error)
	ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	UpdateNote(ctx context.Context, profileID, id int64, title, content string) (*models.Note, error)
	DeleteNote(ctx context.Context, profileID, id int64) error
	RenderNote(ctx context.Context, profileID, id int64) (string, error)
}

type noteService struct {
	noteRepo repository.NoteRepository
	markdown goldmark.Markdown
	now      func() time.Time
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo repository.NoteRepository) NoteService {
	return &noteService{
		noteRepo: noteRepo,
		// Raw HTML in notes is not rendered; goldmark escapes it by default.
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		now:      time.Now,
	}
}

func validateNote(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", errors.NewValidationError("title", "cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxNoteTitleRunes {
		return "", "", errors.NewValidationError("title", "must be at most 200 characters")
	}
	if strings.TrimSpace(content) == "" {
		return "", "", errors.NewValidationError("content", "cannot be empty")
	}
	return title, content, nil
}

func (s *noteService) CreateNote(ctx context.Context, profileID int64, title, content string) (*models.Note, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating note: profile_id=%d", profileID)

	title, content, err := validateNote(title, content)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	note := models.Note{
		ProfileID: profileID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.noteRepo.Insert(ctx, note)
	if err != nil {
		log.Error("failed to insert note: %v", err)
		return nil, errors.NewInternalError(err)
	}
	note.ID = id

	return &note, nil
}

func (s *noteService) GetNote(ctx context.Context, profileID, id int64) (*models.Note, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting note: id=%d, profile_id=%d", id, profileID)

	note, err := s.noteRepo.Get(ctx, id, profileID)
	if err != nil {
		log.Error("failed to get note: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if note == nil {
		return nil, errors.NewNotFoundError("note", id)
	}

	return note, nil
}

func (s *noteService) ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing notes: profile_id=%d, search=%q, sort=%s", filter.ProfileID, filter.Search, filter.Sort)

	switch filter.Sort {
	case "", models.NoteSortNewest, models.NoteSortOldest, models.NoteSortTitle:
	default:
		return nil, errors.NewValidationError("sort", "must be one of newest, oldest, title")
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, errors.NewValidationError("limit", "limit and offset cannot be negative")
	}
	filter.Search = strings.TrimSpace(filter.Search)

	notes, err := s.noteRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list notes: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return notes, nil
}

func (s *noteService) UpdateNote(ctx context.Context, profileID, id int64, title, content string) (*models.Note, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating note: id=%d, profile_id=%d", id, profileID)

	title, content, err := validateNote(title, content)
	if err != nil {
		return nil, err
	}

	note, err := s.GetNote(ctx, profileID, id)
	if err != nil {
		return nil, err
	}
	note.Title = title
	note.Content = content
	note.UpdatedAt = s.now().UTC()

	if err := s.noteRepo.Update(ctx, *note); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewNotFoundError("note", id)
		}
		log.Error("failed to update note: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return note, nil
}

// DeleteNote also removes the flashcards and quizzes generated from the note.
func (s *noteService) DeleteNote(ctx context.Context, profileID, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting note: id=%d, profile_id=%d", id, profileID)

	if err := s.noteRepo.Delete(ctx, id, profileID); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NewNotFoundError("note", id)
		}
		log.Error("failed to delete note: %v", err)
		return errors.NewInternalError(err)
	}

	return nil
}

// RenderNote converts the note's Markdown content to HTML.
func (s *noteService) RenderNote(ctx context.Context, profileID, id int64) (string, error) {
	note, err := s.GetNote(ctx, profileID, id)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(note.Content), &buf); err != nil {
		logger.FromContext(ctx).Error("failed to render note %d: %v", id, err)
		return "", errors.NewInternalError(err)
	}

	return buf.String(), nil
}
