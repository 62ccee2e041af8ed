package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/flashcard"
	"github.com/vytor/studyflash/internal/llm"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
	"github.com/vytor/studyflash/internal/studygen"
	"github.com/vytor/studyflash/internal/worker"
)

type generationRunner struct {
	generator     *studygen.Generator
	noteRepo      repository.NoteRepository
	flashcardRepo repository.FlashcardRepository
	quizRepo      repository.QuizRepository
	config        GenerationConfig
	now           func() time.Time
}

// NewGenerationRunner creates the worker.GenerationRunner that calls the model
// and stores what it produced.
func NewGenerationRunner(
	generator *studygen.Generator,
	noteRepo repository.NoteRepository,
	flashcardRepo repository.FlashcardRepository,
	quizRepo repository.QuizRepository,
	config GenerationConfig,
) worker.GenerationRunner {
	return &generationRunner{
		generator:     generator,
		noteRepo:      noteRepo,
		flashcardRepo: flashcardRepo,
		quizRepo:      quizRepo,
		config:        config,
		now:           time.Now,
	}
}

func (r *generationRunner) RunGeneration(ctx context.Context, job models.GenerationJob) (worker.GenerationResult, error) {
	log := logger.FromContext(ctx).WithPrefix("generation")
	log.Info("running %s generation with %s", job.Kind, r.generator.ModelID())

	note, err := r.noteRepo.Get(ctx, job.NoteID, job.ProfileID)
	if err != nil {
		log.Error("failed to load note: %v", err)
		return worker.GenerationResult{}, errors.NewInternalError(err)
	}
	if note == nil {
		return worker.GenerationResult{}, errors.NewNotFoundError("note", job.NoteID)
	}

	switch job.Kind {
	case models.JobKindFlashcards:
		return r.flashcards(ctx, *note)
	case models.JobKindQuiz:
		return r.quiz(ctx, *note)
	case models.JobKindSummary:
		return r.summary(ctx, *note)
	}
	return worker.GenerationResult{}, errors.NewValidationError("kind", string(job.Kind))
}

func (r *generationRunner) flashcards(ctx context.Context, note models.Note) (worker.GenerationResult, error) {
	log := logger.FromContext(ctx)

	generated, err := r.generator.Flashcards(ctx, note, r.config.FlashcardsPerNote)
	if err != nil {
		log.Warn("flashcard generation failed: %v", err)
		return worker.GenerationResult{}, generationError(err)
	}

	// New cards are due right away.
	state := flashcard.NewReviewState(r.now())
	cards := make([]models.Flashcard, 0, len(generated))
	for _, g := range generated {
		cards = append(cards, models.Flashcard{
			ProfileID:   note.ProfileID,
			NoteID:      note.ID,
			Front:       g.Front,
			Back:        g.Back,
			ReviewState: state,
			CreatedAt:   state.NextReviewAt,
		})
	}
	if _, err := r.flashcardRepo.InsertBatch(ctx, cards); err != nil {
		log.Error("failed to store generated flashcards: %v", err)
		return worker.GenerationResult{}, errors.NewInternalError(err)
	}

	return worker.GenerationResult{Count: len(cards)}, nil
}

func (r *generationRunner) quiz(ctx context.Context, note models.Note) (worker.GenerationResult, error) {
	log := logger.FromContext(ctx)

	questions, err := r.generator.Quiz(ctx, note, r.config.QuestionsPerQuiz)
	if err != nil {
		log.Warn("quiz generation failed: %v", err)
		return worker.GenerationResult{}, generationError(err)
	}

	quizID, err := r.quizRepo.Insert(ctx, models.Quiz{
		ProfileID: note.ProfileID,
		NoteID:    note.ID,
		Title:     "Quiz: " + note.Title,
		Questions: questions,
		CreatedAt: r.now(),
	})
	if err != nil {
		log.Error("failed to store generated quiz: %v", err)
		return worker.GenerationResult{}, errors.NewInternalError(err)
	}

	return worker.GenerationResult{Count: len(questions), QuizID: &quizID}, nil
}

func (r *generationRunner) summary(ctx context.Context, note models.Note) (worker.GenerationResult, error) {
	log := logger.FromContext(ctx)

	summary, err := r.generator.Summary(ctx, note)
	if err != nil {
		log.Warn("summary generation failed: %v", err)
		return worker.GenerationResult{}, generationError(err)
	}

	if err := r.noteRepo.UpdateSummary(ctx, note.ID, summary, r.now()); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return worker.GenerationResult{}, errors.NewNotFoundError("note", note.ID)
		}
		log.Error("failed to store summary: %v", err)
		return worker.GenerationResult{}, errors.NewInternalError(err)
	}

	return worker.GenerationResult{Count: 1}, nil
}

// generationError translates provider failures into application errors whose
// message is safe to show on the job.
func generationError(err error) *errors.AppError {
	var (
		rateLimit   *llm.ErrRateLimit
		invalid     *llm.ErrInvalidResponse
		truncated   *llm.ErrMaxTokensExceeded
		unavailable *llm.ErrProviderUnavailable
	)
	switch {
	case stderrors.Is(err, llm.ErrNotConfigured):
		return errors.NewUnavailableError("AI generation is not configured", err)
	case stderrors.As(err, &rateLimit):
		return errors.NewRateLimitedError("AI provider is rate limiting requests, try again later")
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.NewUpstreamError("AI provider timed out", err)
	case stderrors.As(err, &invalid), stderrors.As(err, &truncated):
		return errors.NewUpstreamError("AI provider returned an unusable response", err)
	case stderrors.As(err, &unavailable):
		return errors.NewUpstreamError("AI provider is unavailable", err)
	}
	return errors.NewUpstreamError("AI generation failed", err)
}
