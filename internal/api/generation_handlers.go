package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/studyflash/internal/models"
)

// handleGenerate returns a handler that queues kind generation for the note in
// the path and answers 202 with the pending job.
func (s *Server) handleGenerate(kind models.JobKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noteID, err := pathID(r, "id")
		if err != nil {
			handleError(w, r, err)
			return
		}

		job, err := s.GenerationService.Generate(r.Context(), profileFromContext(r.Context()).ID, noteID, kind)
		if err != nil {
			handleError(w, r, err)
			return
		}

		w.Header().Set("Location", "/api/jobs/"+job.ID)
		writeJSON(w, r, http.StatusAccepted, job)
	}
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.GenerationService.GetJob(r.Context(), profileFromContext(r.Context()).ID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, job)
}
