package api

import (
	"context"

	"github.com/vytor/studyflash/internal/services"
)

// Pinger is satisfied by *sql.DB and used by the readiness check.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	DB                Pinger
	ProfileService    services.ProfileService
	NoteService       services.NoteService
	FlashcardService  services.FlashcardService
	QuizService       services.QuizService
	GenerationService services.GenerationService
	StatsService      services.StatsService
	// GenerationLimiter throttles generation requests per profile. Nil disables it.
	GenerationLimiter *RateLimiter
}
