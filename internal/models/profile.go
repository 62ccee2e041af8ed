package models

import "time"

// Profile is a learner. All study data is owned by exactly one profile.
type Profile struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	CreatedAt   time.Time  `json:"created_at"`
	LastStudyAt *time.Time `json:"last_study_at"`
}
