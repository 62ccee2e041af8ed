package stats

import (
	"math"
	"sort"
	"time"

	"github.com/vytor/studyflash/internal/models"
)

// PerformanceDays is the length of the performance series, ending today.
const PerformanceDays = 7

// LongestStreak is the longest run of consecutive calendar days in loc with
// at least one activity.
func LongestStreak(activity []time.Time, loc *time.Location) int {
	seen := make(map[time.Time]struct{}, len(activity))
	days := make([]time.Time, 0, len(activity))
	for _, t := range activity {
		d := startOfDay(t.In(loc))
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 0, 0
	for i, d := range days {
		if i > 0 && startOfDay(days[i-1].AddDate(0, 0, 1)).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

type badge struct {
	id, title, description string
	requirement            int
	value                  func(c models.StudyCounts, avg float64, streak int) int
}

var badges = []badge{
	{"first_note", "First Steps", "Create your first note", 1,
		func(c models.StudyCounts, _ float64, _ int) int { return c.Notes }},
	{"note_master", "Note Master", "Create 10 notes", 10,
		func(c models.StudyCounts, _ float64, _ int) int { return c.Notes }},
	{"quiz_champion", "Quiz Champion", "Complete 20 quizzes", 20,
		func(c models.StudyCounts, _ float64, _ int) int { return c.Attempts }},
	{"perfect_score", "Perfectionist", "Average at least 90% on quizzes", 90,
		func(_ models.StudyCounts, avg float64, _ int) int { return int(math.Round(avg)) }},
	{"flashcard_enthusiast", "Card Collector", "Create 50 flashcards", 50,
		func(c models.StudyCounts, _ float64, _ int) int { return c.Flashcards }},
	{"streak_master", "Streak Master", "Study 7 days in a row", 7,
		func(_ models.StudyCounts, _ float64, streak int) int { return streak }},
	{"knowledge_seeker", "Knowledge Seeker", "Study 5 days in a row", 5,
		func(_ models.StudyCounts, _ float64, streak int) int { return streak }},
	{"dedicated_learner", "Dedicated Learner", "Generate 5 quizzes", 5,
		func(c models.StudyCounts, _ float64, _ int) int { return c.Quizzes }},
}

// Achievements evaluates every badge. Progress is capped at the requirement.
// Streak badges are judged on the streak passed in, which callers should make
// the longest so an earned badge is never lost.
func Achievements(counts models.StudyCounts, averageScore float64, streak int) []models.Achievement {
	out := make([]models.Achievement, 0, len(badges))
	for _, b := range badges {
		v := b.value(counts, averageScore, streak)
		out = append(out, models.Achievement{
			ID:          b.id,
			Title:       b.title,
			Description: b.description,
			Unlocked:    v >= b.requirement,
			Progress:    min(v, b.requirement),
			Requirement: b.requirement,
		})
	}
	return out
}

// WeeklyPerformance buckets attempts and creations into the PerformanceDays
// calendar days ending on now's day, oldest first.
func WeeklyPerformance(scores []models.AttemptScore, created models.CreationTimes, now time.Time) []models.DayPerformance {
	loc := now.Location()
	first := startOfDay(now.AddDate(0, 0, -(PerformanceDays - 1)))

	series := make([]models.DayPerformance, PerformanceDays)
	index := make(map[time.Time]int, PerformanceDays)
	for i := range series {
		d := startOfDay(first.AddDate(0, 0, i))
		series[i] = models.DayPerformance{Date: d, Day: d.Weekday().String()[:3]}
		index[d] = i
	}
	slot := func(t time.Time) (int, bool) {
		i, ok := index[startOfDay(t.In(loc))]
		return i, ok
	}

	percents := make([][]models.AttemptScore, PerformanceDays)
	for _, s := range scores {
		if i, ok := slot(s.CompletedAt); ok {
			series[i].Sessions++
			percents[i] = append(percents[i], s)
		}
	}
	for i := range series {
		series[i].QuizScore = AverageScore(percents[i])
	}
	for _, t := range created.Notes {
		if i, ok := slot(t); ok {
			series[i].Notes++
		}
	}
	for _, t := range created.Flashcards {
		if i, ok := slot(t); ok {
			series[i].Flashcards++
		}
	}
	return series
}
