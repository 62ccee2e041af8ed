package models

import "time"

type Note struct {
	ID        int64     `json:"id"`
	ProfileID int64     `json:"profile_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	NoteSortNewest = "newest"
	NoteSortOldest = "oldest"
	NoteSortTitle  = "title"
)

type NoteFilter struct {
	ProfileID int64
	Search    string
	Sort      string
	Limit     int
	Offset    int
}
