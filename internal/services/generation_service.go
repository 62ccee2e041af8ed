package services

import (
	"context"
	stderrors "errors"

	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/jobs"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
	"github.com/vytor/studyflash/internal/worker"
)

// GenerationService accepts AI generation requests and reports job progress.
type GenerationService interface {
	Generate(ctx context.Context, profileID, noteID int64, kind models.JobKind) (*models.GenerationJob, error)
	GetJob(ctx context.Context, profileID int64, id string) (*models.GenerationJob, error)
}

type generationService struct {
	noteRepo repository.NoteRepository
	jobRepo  repository.JobRepository
	queue    jobs.JobQueue
}

// NewGenerationService creates a new GenerationService. A nil queue means no
// LLM is configured and every Generate call is rejected as unavailable.
func NewGenerationService(noteRepo repository.NoteRepository, jobRepo repository.JobRepository, queue jobs.JobQueue) GenerationService {
	return &generationService{noteRepo: noteRepo, jobRepo: jobRepo, queue: queue}
}

func (s *generationService) Generate(ctx context.Context, profileID, noteID int64, kind models.JobKind) (*models.GenerationJob, error) {
	log := logger.FromContext(ctx)
	log.Debug("requesting %s generation: note_id=%d, profile_id=%d", kind, noteID, profileID)

	switch kind {
	case models.JobKindFlashcards, models.JobKindQuiz, models.JobKindSummary:
	default:
		return nil, errors.NewValidationError("kind", "must be one of flashcards, quiz, summary")
	}
	if s.queue == nil {
		return nil, errors.NewUnavailableError("AI generation is not configured", nil)
	}

	note, err := s.noteRepo.Get(ctx, noteID, profileID)
	if err != nil {
		log.Error("failed to get note: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if note == nil {
		return nil, errors.NewNotFoundError("note", noteID)
	}

	job, err := s.queue.EnqueueGeneration(ctx, profileID, noteID, kind)
	if err != nil {
		if stderrors.Is(err, worker.ErrQueueFull) || stderrors.Is(err, worker.ErrPoolStopped) {
			return nil, errors.NewUnavailableError("generation queue is busy, try again later", err)
		}
		log.Error("failed to enqueue generation: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return job, nil
}

func (s *generationService) GetJob(ctx context.Context, profileID int64, id string) (*models.GenerationJob, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting generation job: id=%s", id)

	job, err := s.jobRepo.Get(ctx, id, profileID)
	if err != nil {
		log.Error("failed to get job: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if job == nil {
		return nil, errors.NewNotFoundError("job", id)
	}

	return job, nil
}
