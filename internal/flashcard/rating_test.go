package flashcard_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/studyflash/internal/flashcard"
)

func TestParseRating(t *testing.T) {
	tests := []struct {
		in   string
		want flashcard.Rating
	}{
		{"hard", flashcard.Hard},
		{"medium", flashcard.Medium},
		{"easy", flashcard.Easy},
	}
	for _, tt := range tests {
		got, err := flashcard.ParseRating(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.in, got.String())
	}
}

func TestParseRating_Rejects(t *testing.T) {
	for _, in := range []string{"impossible", "", "Easy", "HARD", " medium", "again", "good"} {
		_, err := flashcard.ParseRating(in)
		require.Error(t, err, "input %q", in)
		assert.True(t, errors.Is(err, flashcard.ErrInvalidRating))
	}
}

func TestRating_ZeroValueInvalid(t *testing.T) {
	var r flashcard.Rating
	assert.False(t, r.IsValid())
	assert.Equal(t, "Rating(0)", r.String())

	_, err := r.MarshalText()
	assert.True(t, errors.Is(err, flashcard.ErrInvalidRating))
}

func TestRating_JSON(t *testing.T) {
	type payload struct {
		Rating flashcard.Rating `json:"rating"`
	}

	b, err := json.Marshal(payload{Rating: flashcard.Medium})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rating":"medium"}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"rating":"easy"}`), &p))
	assert.Equal(t, flashcard.Easy, p.Rating)

	err = json.Unmarshal([]byte(`{"rating":"impossible"}`), &p)
	assert.True(t, errors.Is(err, flashcard.ErrInvalidRating))

	err = json.Unmarshal([]byte(`{"rating":3}`), &p)
	assert.True(t, errors.Is(err, flashcard.ErrInvalidRating))
}
