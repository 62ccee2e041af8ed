package studygen

import (
	"fmt"
	"strings"
)

const (
	flashcardSystemPrompt = "Create concise Q/A flashcards. Return valid JSON only."
	quizSystemPrompt      = "You generate high-quality multiple-choice questions. Return valid JSON only."
	summarySystemPrompt   = "You summarize study notes for review. Return valid JSON only."
)

func flashcardPrompt(title, content string, n int) string {
	return fmt.Sprintf(`Generate %d flashcards from this note. Return JSON: {"flashcards":[{"front":"question","back":"answer"}]}

Title: %s

%s`, n, title, content)
}

func quizPrompt(title, content string, n int) string {
	return fmt.Sprintf(`Generate %d MCQs from this content. Return JSON: {"questions":[{"question":"...","options":["..."],"answer_index":0,"explanation_short":"..."}]}

Title: %s

%s`, n, title, content)
}

func summaryPrompt(title, content string) string {
	return fmt.Sprintf(`Summarize this note in at most five sentences. Return JSON: {"summary":"..."}

Title: %s

%s`, title, content)
}

// truncateRunes cuts s to at most max runes without splitting a character.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return strings.TrimSpace(s[:i])
		}
		n++
	}
	return s
}
