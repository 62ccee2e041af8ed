// Package flashcard holds the spaced-repetition scheduler used by the study
// flow. Everything here is pure: callers pass the clock in and persist the
// result themselves.
package flashcard

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	MinEase      = 1.3
	MaxEase      = 2.5
	DefaultEase  = 2.5
	EasyBonus    = 1.3
	EaseStepEasy = 0.15
	EaseStepHard = 0.2

	DefaultIntervalDays = 1

	// MaxIntervalDays caps interval growth at about a century so due dates
	// stay within the years that JSON and the database can represent.
	MaxIntervalDays = 36500
)

var (
	ErrInvalidRating = errors.New("flashcard: invalid rating")
	ErrInvalidState  = errors.New("flashcard: invalid review state")
)

// ReviewState is the per-card memory state the scheduler reads and writes.
type ReviewState struct {
	IntervalDays int       `json:"interval_days"`
	EaseFactor   float64   `json:"ease_factor"`
	Repetitions  int       `json:"repetitions"`
	NextReviewAt time.Time `json:"next_review"`
}

// NewReviewState returns the state a freshly generated card starts with.
// The card is due immediately.
func NewReviewState(now time.Time) ReviewState {
	return ReviewState{
		IntervalDays: DefaultIntervalDays,
		EaseFactor:   DefaultEase,
		Repetitions:  0,
		NextReviewAt: now,
	}
}

// IsDue reports whether the card should be shown at now.
func (s ReviewState) IsDue(now time.Time) bool {
	return !s.NextReviewAt.After(now)
}

// Validate returns an error wrapping ErrInvalidState describing the first
// violated invariant, or nil.
func Validate(s ReviewState) error {
	switch {
	case s.IntervalDays < 1:
		return fmt.Errorf("%w: interval_days %d < 1", ErrInvalidState, s.IntervalDays)
	case s.IntervalDays > MaxIntervalDays:
		return fmt.Errorf("%w: interval_days %d > %d", ErrInvalidState, s.IntervalDays, MaxIntervalDays)
	case math.IsNaN(s.EaseFactor) || s.EaseFactor < MinEase || s.EaseFactor > MaxEase:
		return fmt.Errorf("%w: ease_factor %v outside [%v, %v]", ErrInvalidState, s.EaseFactor, MinEase, MaxEase)
	case s.Repetitions < 0:
		return fmt.Errorf("%w: repetitions %d < 0", ErrInvalidState, s.Repetitions)
	}
	return nil
}

// Normalize clamps s into the valid range and reports whether anything had to
// change. A valid state is returned untouched.
func Normalize(s ReviewState) (ReviewState, bool) {
	changed := false
	switch {
	case s.IntervalDays < 1:
		s.IntervalDays = 1
		changed = true
	case s.IntervalDays > MaxIntervalDays:
		s.IntervalDays = MaxIntervalDays
		changed = true
	}
	switch {
	case math.IsNaN(s.EaseFactor):
		s.EaseFactor = DefaultEase
		changed = true
	case s.EaseFactor < MinEase:
		s.EaseFactor = MinEase
		changed = true
	case s.EaseFactor > MaxEase:
		s.EaseFactor = MaxEase
		changed = true
	}
	if s.Repetitions < 0 {
		s.Repetitions = 0
		changed = true
	}
	return s, changed
}

// NextState computes the state after a review rated at now.
//
//	easy:   interval = round(interval * ease * 1.3), ease = min(ease+0.15, 2.5), reps+1
//	medium: interval = round(interval * ease),                                    reps+1
//	hard:   interval = 1, ease = max(ease-0.2, 1.3), reps = 0
//
// Intervals never exceed MaxIntervalDays.
//
// An out-of-range current state is clamped first. The due date is moved by
// calendar days in now's location, so DST shifts do not skew it.
func NextState(current ReviewState, rating Rating, now time.Time) (ReviewState, error) {
	if !rating.IsValid() {
		return current, fmt.Errorf("%w: %s", ErrInvalidRating, rating)
	}
	state, _ := Normalize(current)

	var next ReviewState
	switch rating {
	case Easy:
		next.IntervalDays = roundDays(float64(state.IntervalDays) * state.EaseFactor * EasyBonus)
		next.EaseFactor = math.Min(state.EaseFactor+EaseStepEasy, MaxEase)
		next.Repetitions = state.Repetitions + 1
	case Medium:
		next.IntervalDays = roundDays(float64(state.IntervalDays) * state.EaseFactor)
		next.EaseFactor = state.EaseFactor
		next.Repetitions = state.Repetitions + 1
	case Hard:
		next.IntervalDays = 1
		next.EaseFactor = math.Max(state.EaseFactor-EaseStepHard, MinEase)
		next.Repetitions = 0
	}
	next.NextReviewAt = now.AddDate(0, 0, next.IntervalDays)
	return next, nil
}

// roundDays rounds half away from zero and keeps the result in [1, MaxIntervalDays].
func roundDays(days float64) int {
	r := math.Round(days)
	if r < 1 {
		return 1
	}
	if r > MaxIntervalDays {
		return MaxIntervalDays
	}
	return int(r)
}
