package api

import (
	"net/http"
	"strconv"

	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
)

type reviewRequest struct {
	Rating      string  `json:"rating" validate:"required"`
	TimeSeconds float64 `json:"time_seconds" validate:"min=0"`
}

func (s *Server) handleListFlashcards(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}

	filter := models.FlashcardFilter{
		ProfileID: profileFromContext(r.Context()).ID,
		Limit:     limit,
		Offset:    offset,
	}
	q := r.URL.Query()
	if raw := q.Get("note_id"); raw != "" {
		noteID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || noteID <= 0 {
			handleError(w, r, errors.NewBadRequestError("invalid note_id"))
			return
		}
		filter.NoteID = noteID
	}
	if raw := q.Get("due"); raw != "" {
		due, err := strconv.ParseBool(raw)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid due flag"))
			return
		}
		filter.DueOnly = due
	}

	cards, err := s.FlashcardService.ListFlashcards(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cards)
}

func (s *Server) handleDueFlashcards(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cards, err := s.FlashcardService.DueFlashcards(r.Context(), profileFromContext(r.Context()).ID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cards)
}

func (s *Server) handleReviewFlashcard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	log = log.WithFields(map[string]any{
		"flashcard_id": id,
		"rating":       req.Rating,
		"time_seconds": req.TimeSeconds,
	})
	log.Debug("reviewing flashcard")

	card, err := s.FlashcardService.ReviewFlashcard(r.Context(), profileFromContext(r.Context()).ID, id, req.Rating, req.TimeSeconds)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("flashcard reviewed, next review in %d days", card.IntervalDays)
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleDeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.FlashcardService.DeleteFlashcard(r.Context(), profileFromContext(r.Context()).ID, id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
