// Package studygen turns study notes into flashcards, quizzes and summaries
// using an LLM provider.
package studygen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vytor/studyflash/internal/llm"
	"github.com/vytor/studyflash/internal/models"
)

// ErrNoUsableItems is wrapped in llm.ErrInvalidResponse when every generated
// item was blank or malformed.
var ErrNoUsableItems = errors.New("no usable items in generated output")

type Config struct {
	MaxTokens       int
	Temperature     float64
	MaxContentRunes int
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:       4096,
		Temperature:     0.3,
		MaxContentRunes: 24000,
	}
}

// Card is a generated question/answer pair.
type Card struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type Generator struct {
	provider llm.Provider
	config   Config
}

func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// ModelID reports the model behind the generator.
func (g *Generator) ModelID() string {
	return g.provider.ModelID()
}

// Flashcards asks for n cards from the note and returns at most n non-blank ones.
func (g *Generator) Flashcards(ctx context.Context, note models.Note, n int) ([]Card, error) {
	var out struct {
		Flashcards []Card `json:"flashcards"`
	}
	prompt := flashcardPrompt(note.Title, g.content(note), n)
	if err := g.generate(ctx, flashcardSystemPrompt, prompt, FlashcardSchema, &out); err != nil {
		return nil, err
	}

	cards := make([]Card, 0, len(out.Flashcards))
	for _, c := range out.Flashcards {
		c.Front = strings.TrimSpace(c.Front)
		c.Back = strings.TrimSpace(c.Back)
		if c.Front == "" || c.Back == "" {
			continue
		}
		cards = append(cards, c)
		if len(cards) == n {
			break
		}
	}
	if len(cards) == 0 {
		return nil, &llm.ErrInvalidResponse{Err: ErrNoUsableItems}
	}
	return cards, nil
}

// Quiz asks for n multiple-choice questions. Questions with fewer than two
// non-blank options or an out-of-range answer are dropped.
func (g *Generator) Quiz(ctx context.Context, note models.Note, n int) ([]models.QuizQuestion, error) {
	var out struct {
		Questions []models.QuizQuestion `json:"questions"`
	}
	prompt := quizPrompt(note.Title, g.content(note), n)
	if err := g.generate(ctx, quizSystemPrompt, prompt, QuizSchema, &out); err != nil {
		return nil, err
	}

	questions := make([]models.QuizQuestion, 0, len(out.Questions))
	for _, q := range out.Questions {
		if cleaned, ok := cleanQuestion(q); ok {
			questions = append(questions, cleaned)
		}
		if len(questions) == n {
			break
		}
	}
	if len(questions) == 0 {
		return nil, &llm.ErrInvalidResponse{Err: ErrNoUsableItems}
	}
	return questions, nil
}

func cleanQuestion(q models.QuizQuestion) (models.QuizQuestion, bool) {
	q.Question = strings.TrimSpace(q.Question)
	q.Explanation = strings.TrimSpace(q.Explanation)
	if q.Question == "" || q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
		return q, false
	}

	// Drop blank options while keeping the answer pointing at the same text.
	options := make([]string, 0, len(q.Options))
	answer := -1
	for i, opt := range q.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			if i == q.AnswerIndex {
				return q, false
			}
			continue
		}
		if i == q.AnswerIndex {
			answer = len(options)
		}
		options = append(options, opt)
	}
	if len(options) < 2 {
		return q, false
	}
	q.Options = options
	q.AnswerIndex = answer
	return q, true
}

// Summary returns a short plain-text summary of the note.
func (g *Generator) Summary(ctx context.Context, note models.Note) (string, error) {
	var out struct {
		Summary string `json:"summary"`
	}
	prompt := summaryPrompt(note.Title, g.content(note))
	if err := g.generate(ctx, summarySystemPrompt, prompt, SummarySchema, &out); err != nil {
		return "", err
	}
	summary := strings.TrimSpace(out.Summary)
	if summary == "" {
		return "", &llm.ErrInvalidResponse{Err: ErrNoUsableItems}
	}
	return summary, nil
}

func (g *Generator) content(note models.Note) string {
	return truncateRunes(note.Content, g.config.MaxContentRunes)
}

func (g *Generator) generate(ctx context.Context, system, prompt string, schema *llm.Schema, out any) error {
	req := llm.UserPrompt(system, prompt)
	req.Schema = schema
	req.MaxTokens = g.config.MaxTokens
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("%s generation failed: %w", schema.Name, err)
	}
	if err := json.Unmarshal(resp.Content, out); err != nil {
		return &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return nil
}
