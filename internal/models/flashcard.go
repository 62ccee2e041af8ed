package models

import (
	"time"

	"github.com/vytor/studyflash/internal/flashcard"
)

// Flashcard is a question/answer pair plus its spaced-repetition state.
type Flashcard struct {
	ID        int64  `json:"id"`
	ProfileID int64  `json:"profile_id"`
	NoteID    int64  `json:"note_id"`
	Front     string `json:"front"`
	Back      string `json:"back"`
	flashcard.ReviewState
	CreatedAt time.Time `json:"created_at"`
}

type FlashcardFilter struct {
	ProfileID int64
	NoteID    int64
	// DueOnly asks the service to restrict the list to cards due at its clock.
	DueOnly   bool
	DueBefore *time.Time
	Limit     int
	Offset    int
}

type ReviewHistory struct {
	ID           int64            `json:"id"`
	FlashcardID  int64            `json:"flashcard_id"`
	Rating       flashcard.Rating `json:"rating"`
	IntervalDays int              `json:"interval_days"`
	EaseFactor   float64          `json:"ease_factor"`
	Repetitions  int              `json:"repetitions"`
	TimeSeconds  float64          `json:"time_seconds"`
	ReviewedAt   time.Time        `json:"reviewed_at"`
}
