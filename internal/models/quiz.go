package models

import "time"

type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation_short"`
}

type Quiz struct {
	ID        int64          `json:"id"`
	ProfileID int64          `json:"profile_id"`
	NoteID    int64          `json:"note_id"`
	NoteTitle string         `json:"note_title,omitempty"`
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
	CreatedAt time.Time      `json:"created_at"`
}

// SkippedAnswer marks a question the learner left unanswered.
const SkippedAnswer = -1

type QuizAttempt struct {
	ID             int64            `json:"id"`
	QuizID         int64            `json:"quiz_id"`
	ProfileID      int64            `json:"profile_id"`
	Answers        []int            `json:"answers"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"total_questions"`
	CompletedAt    time.Time        `json:"completed_at"`
	Results        []QuestionResult `json:"results,omitempty"`
}

type QuestionResult struct {
	Index       int    `json:"index"`
	Selected    int    `json:"selected"`
	AnswerIndex int    `json:"answer_index"`
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation_short"`
}
