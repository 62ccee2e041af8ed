package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/flashcard"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

const defaultDueLimit = 50

// FlashcardService handles flashcard-related business logic
type FlashcardService interface {
	DueFlashcards(ctx context.Context, profileID int64, limit int) ([]models.Flashcard, error)
	ListFlashcards(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error)
	ReviewFlashcard(ctx context.Context, profileID, flashcardID int64, rating string, timeSeconds float64) (*models.Flashcard, error)
	DeleteFlashcard(ctx context.Context, profileID, flashcardID int64) error
}

type flashcardService struct {
	flashcardRepo repository.FlashcardRepository
	profileRepo   repository.ProfileRepository
	now           func() time.Time
}

// NewFlashcardService creates a new FlashcardService. A nil clock means time.Now.
func NewFlashcardService(flashcardRepo repository.FlashcardRepository, profileRepo repository.ProfileRepository, now func() time.Time) FlashcardService {
	if now == nil {
		now = time.Now
	}
	return &flashcardService{flashcardRepo: flashcardRepo, profileRepo: profileRepo, now: now}
}

func (s *flashcardService) DueFlashcards(ctx context.Context, profileID int64, limit int) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting due flashcards: profile_id=%d, limit=%d", profileID, limit)

	if limit <= 0 {
		limit = defaultDueLimit
	}
	now := s.now()
	cards, err := s.flashcardRepo.ListByProfile(ctx, models.FlashcardFilter{
		ProfileID: profileID,
		DueBefore: &now,
		Limit:     limit,
	})
	if err != nil {
		log.Error("failed to list due flashcards: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return cards, nil
}

func (s *flashcardService) ListFlashcards(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing flashcards: profile_id=%d, note_id=%d", filter.ProfileID, filter.NoteID)

	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, errors.NewValidationError("limit", "limit and offset cannot be negative")
	}
	if filter.DueOnly && filter.DueBefore == nil {
		now := s.now()
		filter.DueBefore = &now
	}

	cards, err := s.flashcardRepo.ListByProfile(ctx, filter)
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return cards, nil
}

// ReviewFlashcard applies one recall rating to a card and persists the new
// schedule. A card rated concurrently by another request yields a conflict and
// keeps the other request's result.
func (s *flashcardService) ReviewFlashcard(ctx context.Context, profileID, flashcardID int64, rating string, timeSeconds float64) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing flashcard: flashcard_id=%d, rating=%s", flashcardID, rating)

	r, err := flashcard.ParseRating(rating)
	if err != nil {
		return nil, errors.NewValidationError("rating", "must be one of easy, medium, hard")
	}
	if timeSeconds < 0 {
		return nil, errors.NewValidationError("time_seconds", "cannot be negative")
	}

	card, err := s.flashcardRepo.Get(ctx, flashcardID, profileID)
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("flashcard", flashcardID)
	}

	if err := flashcard.Validate(card.ReviewState); err != nil {
		log.Warn("clamping stored review state of flashcard %d: %v", card.ID, err)
	}

	now := s.now()
	next, err := flashcard.NextState(card.ReviewState, r, now)
	if err != nil {
		return nil, errors.NewValidationError("rating", err.Error())
	}

	if err := s.flashcardRepo.UpdateReviewState(ctx, card.ID, next, card.NextReviewAt); err != nil {
		switch {
		case stderrors.Is(err, repository.ErrStaleState):
			return nil, errors.NewConflictError("flashcard was reviewed concurrently, reload and try again", err)
		case stderrors.Is(err, repository.ErrNotFound):
			return nil, errors.NewNotFoundError("flashcard", flashcardID)
		}
		log.Error("failed to update flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Debug("applied review, new interval=%d days, ease_factor=%.2f", next.IntervalDays, next.EaseFactor)

	// History and last-study time are bookkeeping; the review already counts.
	if err := s.flashcardRepo.InsertReviewHistory(ctx, models.ReviewHistory{
		FlashcardID:  card.ID,
		Rating:       r,
		IntervalDays: next.IntervalDays,
		EaseFactor:   next.EaseFactor,
		Repetitions:  next.Repetitions,
		TimeSeconds:  timeSeconds,
		ReviewedAt:   now,
	}); err != nil {
		log.Warn("failed to store review history: %v", err)
	}
	if err := s.profileRepo.TouchLastStudy(ctx, profileID, now); err != nil {
		log.Warn("failed to update last study time: %v", err)
	}

	card.ReviewState = next
	return card, nil
}

func (s *flashcardService) DeleteFlashcard(ctx context.Context, profileID, flashcardID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting flashcard: flashcard_id=%d, profile_id=%d", flashcardID, profileID)

	if err := s.flashcardRepo.Delete(ctx, flashcardID, profileID); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NewNotFoundError("flashcard", flashcardID)
		}
		log.Error("failed to delete flashcard: %v", err)
		return errors.NewInternalError(err)
	}

	return nil
}
