// Package stats derives dashboard figures from raw study activity. Functions
// are pure; calendar days are taken in the location of the now argument.
package stats

import (
	"math"
	"time"

	"github.com/vytor/studyflash/internal/models"
)

// MinutesPerQuestion is the study time credited for each answered quiz question.
const MinutesPerQuestion = 2

// AverageScore is the mean attempt score as a whole percentage. Attempts with
// no questions are ignored.
func AverageScore(scores []models.AttemptScore) float64 {
	var sum float64
	n := 0
	for _, s := range scores {
		if s.TotalQuestions <= 0 {
			continue
		}
		sum += float64(s.Score) / float64(s.TotalQuestions) * 100
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Round(sum / float64(n))
}

// CompletionRate is the whole percentage of attempts that scored at least one point.
func CompletionRate(scores []models.AttemptScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	completed := 0
	for _, s := range scores {
		if s.Score > 0 {
			completed++
		}
	}
	return math.Round(float64(completed) / float64(len(scores)) * 100)
}

// LearningVelocity is notes created per week since the first note, with the
// elapsed time floored at one week. Rounded to one decimal.
func LearningVelocity(notes int, firstNote *time.Time, now time.Time) float64 {
	if notes == 0 {
		return 0
	}
	days := 1.0
	if firstNote != nil {
		days = math.Max(math.Floor(now.Sub(*firstNote).Hours()/24), 1)
	}
	weeks := math.Max(days/7, 1)
	return math.Round(float64(notes)/weeks*10) / 10
}

// CurrentStreak counts consecutive calendar days, ending today, with at least
// one activity. A day without activity today means no streak.
func CurrentStreak(activity []time.Time, now time.Time) int {
	loc := now.Location()
	days := make(map[time.Time]struct{}, len(activity))
	for _, t := range activity {
		days[startOfDay(t.In(loc))] = struct{}{}
	}

	streak := 0
	for day := startOfDay(now); ; day = startOfDay(day.AddDate(0, 0, -1)) {
		if _, ok := days[day]; !ok {
			return streak
		}
		streak++
	}
}

// TodaySessions counts attempts completed on now's calendar day.
func TodaySessions(scores []models.AttemptScore, now time.Time) int {
	today := startOfDay(now)
	n := 0
	for _, s := range scores {
		if startOfDay(s.CompletedAt.In(now.Location())).Equal(today) {
			n++
		}
	}
	return n
}

// TodayProgress is sessions as a percentage of goal, capped at 100.
func TodayProgress(sessions, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Round(math.Min(float64(sessions)/float64(goal)*100, 100))
}

// EstimatedStudyMinutes credits MinutesPerQuestion for every attempted question.
func EstimatedStudyMinutes(scores []models.AttemptScore) int {
	total := 0
	for _, s := range scores {
		total += s.TotalQuestions
	}
	return total * MinutesPerQuestion
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
