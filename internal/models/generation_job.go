package models

import "time"

type JobKind string

const (
	JobKindFlashcards JobKind = "flashcards"
	JobKindQuiz       JobKind = "quiz"
	JobKindSummary    JobKind = "summary"
)

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// GenerationJob tracks one asynchronous AI generation request for a note.
type GenerationJob struct {
	ID          string    `json:"id"`
	ProfileID   int64     `json:"profile_id"`
	NoteID      int64     `json:"note_id"`
	Kind        JobKind   `json:"kind"`
	Status      JobStatus `json:"status"`
	ResultCount int       `json:"result_count"`
	QuizID      *int64    `json:"quiz_id,omitempty"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Done reports whether the job reached a terminal status.
func (j GenerationJob) Done() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}
