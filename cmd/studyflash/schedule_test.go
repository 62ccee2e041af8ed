package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/studyflash/internal/flashcard"
)

func execSchedule(t *testing.T, args ...string) (flashcard.ReviewState, error) {
	t.Helper()
	cmd := newScheduleCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return flashcard.ReviewState{}, err
	}
	var state flashcard.ReviewState
	require.NoError(t, json.Unmarshal(out.Bytes(), &state))
	return state, nil
}

func TestSchedule_Easy(t *testing.T) {
	state, err := execSchedule(t, "--interval", "6", "--ease", "2.5", "--reps", "2", "--rating", "easy", "--now", "2025-05-01T09:00:00Z")
	require.NoError(t, err)

	assert.Equal(t, 20, state.IntervalDays)
	assert.Equal(t, 2.5, state.EaseFactor)
	assert.Equal(t, 3, state.Repetitions)
	assert.True(t, state.NextReviewAt.Equal(time.Date(2025, 5, 21, 9, 0, 0, 0, time.UTC)))
}

func TestSchedule_HardResets(t *testing.T) {
	state, err := execSchedule(t, "--interval", "30", "--ease", "1.4", "--reps", "5", "--rating", "hard", "--now", "2025-05-01T09:00:00Z")
	require.NoError(t, err)

	assert.Equal(t, 1, state.IntervalDays)
	assert.Equal(t, flashcard.MinEase, state.EaseFactor)
	assert.Equal(t, 0, state.Repetitions)
}

func TestSchedule_RejectsBadInput(t *testing.T) {
	_, err := execSchedule(t, "--rating", "again")
	assert.ErrorIs(t, err, flashcard.ErrInvalidRating)

	_, err = execSchedule(t, "--rating", "easy", "--now", "tomorrow")
	assert.Error(t, err)

	_, err = execSchedule(t)
	assert.Error(t, err)
}
