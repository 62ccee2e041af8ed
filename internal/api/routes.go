package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/models"
)

const requestTimeout = 30 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(jsonContentTypeMiddleware)
	r.Use(timeoutMiddleware(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/profiles", s.handleListProfiles)
		r.Post("/profiles", s.handleCreateProfile)

		r.Group(func(r chi.Router) {
			r.Use(s.profileMiddleware)

			r.Get("/profiles/me", s.handleCurrentProfile)
			r.Patch("/profiles/me", s.handleUpdateProfile)
			r.Delete("/profiles/me", s.handleDeleteProfile)

			r.Get("/notes", s.handleListNotes)
			r.Post("/notes", s.handleCreateNote)
			r.Get("/notes/{id}", s.handleGetNote)
			r.Get("/notes/{id}/html", s.handleNoteHTML)
			r.Put("/notes/{id}", s.handleUpdateNote)
			r.Delete("/notes/{id}", s.handleDeleteNote)

			r.Group(func(r chi.Router) {
				r.Use(s.generationLimitMiddleware)
				r.Post("/notes/{id}/flashcards/generate", s.handleGenerate(models.JobKindFlashcards))
				r.Post("/notes/{id}/quiz/generate", s.handleGenerate(models.JobKindQuiz))
				r.Post("/notes/{id}/summary/generate", s.handleGenerate(models.JobKindSummary))
			})
			r.Get("/jobs/{id}", s.handleGetJob)

			r.Get("/flashcards", s.handleListFlashcards)
			r.Get("/flashcards/due", s.handleDueFlashcards)
			r.Post("/flashcards/{id}/review", s.handleReviewFlashcard)
			r.Delete("/flashcards/{id}", s.handleDeleteFlashcard)

			r.Get("/quizzes", s.handleListQuizzes)
			r.Get("/quizzes/{id}", s.handleGetQuiz)
			r.Delete("/quizzes/{id}", s.handleDeleteQuiz)
			r.Post("/quizzes/{id}/attempts", s.handleSubmitAttempt)

			r.Get("/stats/dashboard", s.handleDashboard)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, &errors.AppError{
			Code:    errors.ErrCodeNotFound,
			Message: "no route for " + r.URL.Path,
			Status:  http.StatusNotFound,
		})
	})
	return r
}
