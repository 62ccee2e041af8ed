package studygen

import "github.com/vytor/studyflash/internal/llm"

// FlashcardSchema is the response shape for flashcard generation.
var FlashcardSchema = &llm.Schema{
	Name:        "flashcard-set",
	Description: "Question/answer flashcards drawn from a study note",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"flashcards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"front": map[string]any{"type": "string", "description": "The question"},
						"back":  map[string]any{"type": "string", "description": "The answer"},
					},
					"required":             []any{"front", "back"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"flashcards"},
		"additionalProperties": false,
	},
}

// QuizSchema is the response shape for multiple-choice quiz generation.
var QuizSchema = &llm.Schema{
	Name:        "quiz",
	Description: "Multiple-choice questions drawn from a study note",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"answer_index": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the correct option",
						},
						"explanation_short": map[string]any{"type": "string"},
					},
					"required":             []any{"question", "options", "answer_index", "explanation_short"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// SummarySchema is the response shape for note summaries.
var SummarySchema = &llm.Schema{
	Name:        "note-summary",
	Description: "A short summary of a study note",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{"type": "string"},
		},
		"required":             []any{"summary"},
		"additionalProperties": false,
	},
}
