package models

import "time"

type StudyCounts struct {
	Notes      int `json:"notes"`
	Quizzes    int `json:"quizzes"`
	Flashcards int `json:"flashcards"`
	Attempts   int `json:"attempts"`
	Reviews    int `json:"reviews"`
}

type AttemptScore struct {
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CompletedAt    time.Time `json:"completed_at"`
}

type FlashcardMaturity struct {
	New      int `json:"new"`
	Learning int `json:"learning"`
	Mature   int `json:"mature"`
}

// CreationTimes holds when notes and flashcards were created.
type CreationTimes struct {
	Notes      []time.Time
	Flashcards []time.Time
}

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
	Progress    int    `json:"progress"`
	Requirement int    `json:"requirement"`
}

// DayPerformance is one calendar day of the weekly performance series.
// QuizScore is the rounded mean percentage of that day's attempts.
type DayPerformance struct {
	Date       time.Time `json:"date"`
	Day        string    `json:"day"`
	QuizScore  float64   `json:"quiz_score"`
	Flashcards int       `json:"flashcards"`
	Notes      int       `json:"notes"`
	Sessions   int       `json:"sessions"`
}

type DashboardStats struct {
	Counts           StudyCounts       `json:"counts"`
	DueFlashcards    int               `json:"due_flashcards"`
	AverageScore     float64           `json:"average_score"`
	CompletionRate   float64           `json:"completion_rate"`
	LearningVelocity float64           `json:"learning_velocity"`
	StudyMinutes     int               `json:"study_minutes"`
	CurrentStreak    int               `json:"current_streak"`
	LongestStreak    int               `json:"longest_streak"`
	TodaySessions    int               `json:"today_sessions"`
	DailyGoal        int               `json:"daily_goal"`
	TodayProgress    float64           `json:"today_progress"`
	Maturity         FlashcardMaturity `json:"maturity"`
	Achievements     []Achievement     `json:"achievements"`
	Performance      []DayPerformance  `json:"performance"`
}
