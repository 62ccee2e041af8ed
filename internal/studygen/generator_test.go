package studygen_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/studyflash/internal/llm"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/studygen"
)

var note = models.Note{ID: 1, Title: "Photosynthesis", Content: "Plants convert light into chemical energy."}

func reply(s string) llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(s)}
}

func TestFlashcards_DropsBlankAndCaps(t *testing.T) {
	mock := llm.NewMockProvider(reply(`{"flashcards":[
		{"front":" What is made? ","back":"Glucose"},
		{"front":"","back":"orphan"},
		{"front":"Where?","back":"  "},
		{"front":"Input?","back":"Light"},
		{"front":"Extra","back":"Card"}
	]}`))
	g := studygen.New(mock, studygen.DefaultConfig())

	cards, err := g.Flashcards(context.Background(), note, 2)
	require.NoError(t, err)
	assert.Equal(t, []studygen.Card{{Front: "What is made?", Back: "Glucose"}, {Front: "Input?", Back: "Light"}}, cards)

	require.Equal(t, 1, mock.CallCount())
	call := mock.Calls[0]
	assert.Equal(t, "Create concise Q/A flashcards. Return valid JSON only.", call.System)
	assert.Same(t, studygen.FlashcardSchema, call.Schema)
	assert.Contains(t, call.Messages[0].Content, "Generate 2 flashcards")
	assert.Contains(t, call.Messages[0].Content, note.Content)
}

func TestFlashcards_NothingUsable(t *testing.T) {
	mock := llm.NewMockProvider(reply(`{"flashcards":[{"front":" ","back":"x"}]}`))
	g := studygen.New(mock, studygen.DefaultConfig())

	_, err := g.Flashcards(context.Background(), note, 8)
	var inv *llm.ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
	assert.ErrorIs(t, err, studygen.ErrNoUsableItems)
}

func TestFlashcards_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	g := studygen.New(mock, studygen.DefaultConfig())

	_, err := g.Flashcards(context.Background(), note, 8)
	var rl *llm.ErrRateLimit
	assert.ErrorAs(t, err, &rl)
}

func TestQuiz_CleansQuestions(t *testing.T) {
	mock := llm.NewMockProvider(reply(`{"questions":[
		{"question":"Main product?","options":["Oxygen","","Glucose"],"answer_index":2,"explanation_short":"Sugar"},
		{"question":"Out of range","options":["a","b"],"answer_index":5,"explanation_short":""},
		{"question":"One option","options":["a",""],"answer_index":0,"explanation_short":""},
		{"question":"Blank answer","options":["a","","c"],"answer_index":1,"explanation_short":""},
		{"question":"Energy source?","options":["Light","Soil"],"answer_index":0,"explanation_short":"Sunlight"}
	]}`))
	g := studygen.New(mock, studygen.DefaultConfig())

	qs, err := g.Quiz(context.Background(), note, 5)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, []string{"Oxygen", "Glucose"}, qs[0].Options)
	assert.Equal(t, 1, qs[0].AnswerIndex)
	assert.Equal(t, "Glucose", qs[0].Options[qs[0].AnswerIndex])
	assert.Equal(t, "Energy source?", qs[1].Question)

	assert.Equal(t, "You generate high-quality multiple-choice questions. Return valid JSON only.", mock.Calls[0].System)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "Generate 5 MCQs")
}

func TestQuiz_SchemaViolation(t *testing.T) {
	mock := llm.NewMockProvider(reply(`[{"question":"bare array"}]`))
	g := studygen.New(mock, studygen.DefaultConfig())

	_, err := g.Quiz(context.Background(), note, 5)
	var inv *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestSummary(t *testing.T) {
	mock := llm.NewMockProvider(reply(`{"summary":"  Light becomes sugar.  "}`), reply(`{"summary":""}`))
	g := studygen.New(mock, studygen.DefaultConfig())

	s, err := g.Summary(context.Background(), note)
	require.NoError(t, err)
	assert.Equal(t, "Light becomes sugar.", s)

	_, err = g.Summary(context.Background(), note)
	assert.ErrorIs(t, err, studygen.ErrNoUsableItems)
}

func TestContentIsTruncated(t *testing.T) {
	mock := llm.NewMockProvider(reply(`{"summary":"ok"}`))
	cfg := studygen.DefaultConfig()
	cfg.MaxContentRunes = 10
	g := studygen.New(mock, cfg)

	long := models.Note{Title: "Long", Content: strings.Repeat("é", 50)}
	_, err := g.Summary(context.Background(), long)
	require.NoError(t, err)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, strings.Repeat("é", 10))
	assert.NotContains(t, mock.Calls[0].Messages[0].Content, strings.Repeat("é", 11))
}
