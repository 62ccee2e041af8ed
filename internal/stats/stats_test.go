package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/stats"
)

var now = time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)

func attempt(score, total int, at time.Time) models.AttemptScore {
	return models.AttemptScore{Score: score, TotalQuestions: total, CompletedAt: at}
}

func TestAverageScore(t *testing.T) {
	assert.Zero(t, stats.AverageScore(nil))

	scores := []models.AttemptScore{attempt(5, 5, now), attempt(1, 2, now), attempt(0, 0, now)}
	assert.Equal(t, 75.0, stats.AverageScore(scores), "empty attempts are ignored")

	assert.Equal(t, 33.0, stats.AverageScore([]models.AttemptScore{attempt(1, 3, now)}))
}

func TestCompletionRate(t *testing.T) {
	assert.Zero(t, stats.CompletionRate(nil))
	scores := []models.AttemptScore{attempt(0, 5, now), attempt(3, 5, now), attempt(1, 5, now)}
	assert.Equal(t, 67.0, stats.CompletionRate(scores))
}

func TestLearningVelocity(t *testing.T) {
	assert.Zero(t, stats.LearningVelocity(0, nil, now))

	recent := now.Add(-36 * time.Hour)
	assert.Equal(t, 4.0, stats.LearningVelocity(4, &recent, now), "elapsed time is floored at a week")

	month := now.AddDate(0, 0, -28)
	assert.Equal(t, 2.5, stats.LearningVelocity(10, &month, now))

	assert.Equal(t, 3.0, stats.LearningVelocity(3, nil, now))
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name     string
		activity []time.Time
		want     int
	}{
		{name: "no activity", want: 0},
		{
			name:     "only yesterday",
			activity: []time.Time{now.AddDate(0, 0, -1)},
			want:     0,
		},
		{
			name: "three days with a gap before",
			activity: []time.Time{
				now.Add(-time.Hour),
				now.Add(-18 * time.Hour), // today, just after midnight
				now.AddDate(0, 0, -1),
				now.AddDate(0, 0, -2).Add(-10 * time.Hour),
				now.AddDate(0, 0, -4),
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stats.CurrentStreak(tt.activity, now))
		})
	}
}

func TestCurrentStreak_UsesCallerLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	localNow := time.Date(2025, 6, 15, 1, 0, 0, 0, loc)

	// 04:00 UTC on the 15th is still the 14th at UTC-5.
	activity := []time.Time{
		time.Date(2025, 6, 15, 4, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 15, 5, 30, 0, 0, time.UTC),
	}
	assert.Equal(t, 2, stats.CurrentStreak(activity, localNow))
}

func TestTodaySessionsAndProgress(t *testing.T) {
	scores := []models.AttemptScore{
		attempt(1, 1, now.Add(-time.Hour)),
		attempt(1, 1, now.Add(-17*time.Hour)),
		attempt(1, 1, now.Add(-20*time.Hour)),
	}
	sessions := stats.TodaySessions(scores, now)
	assert.Equal(t, 2, sessions)

	assert.Equal(t, 67.0, stats.TodayProgress(sessions, 3))
	assert.Equal(t, 100.0, stats.TodayProgress(5, 3))
	assert.Zero(t, stats.TodayProgress(1, 0))
}

func TestEstimatedStudyMinutes(t *testing.T) {
	scores := []models.AttemptScore{attempt(2, 5, now), attempt(0, 3, now)}
	assert.Equal(t, 16, stats.EstimatedStudyMinutes(scores))
}
