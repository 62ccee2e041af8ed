package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
	"github.com/vytor/studyflash/internal/stats"
)

// streakWindowDays bounds how far back activity is read for both streaks.
const streakWindowDays = 366

// StatsService handles statistics-related business logic
type StatsService interface {
	Dashboard(ctx context.Context, profileID int64) (*models.DashboardStats, error)
}

type statsService struct {
	statsRepo     repository.StatsRepository
	flashcardRepo repository.FlashcardRepository
	dailyGoal     int
	now           func() time.Time
}

// NewStatsService creates a new StatsService. A nil clock means time.Now.
func NewStatsService(statsRepo repository.StatsRepository, flashcardRepo repository.FlashcardRepository, dailyGoal int, now func() time.Time) StatsService {
	if now == nil {
		now = time.Now
	}
	return &statsService{statsRepo: statsRepo, flashcardRepo: flashcardRepo, dailyGoal: dailyGoal, now: now}
}

func (s *statsService) Dashboard(ctx context.Context, profileID int64) (*models.DashboardStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("building dashboard: profile_id=%d", profileID)

	now := s.now()
	var (
		counts    *models.StudyCounts
		maturity  *models.FlashcardMaturity
		scores    []models.AttemptScore
		activity  []time.Time
		firstNote *time.Time
		created   *models.CreationTimes
		due       int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts, err = s.statsRepo.Counts(gctx, profileID)
		return err
	})
	g.Go(func() (err error) {
		maturity, err = s.statsRepo.Maturity(gctx, profileID)
		return err
	})
	g.Go(func() (err error) {
		scores, err = s.statsRepo.AttemptScores(gctx, profileID)
		return err
	})
	g.Go(func() (err error) {
		activity, err = s.statsRepo.ActivityTimes(gctx, profileID, now.AddDate(0, 0, -streakWindowDays))
		return err
	})
	g.Go(func() (err error) {
		firstNote, err = s.statsRepo.FirstNoteAt(gctx, profileID)
		return err
	})
	g.Go(func() (err error) {
		created, err = s.statsRepo.CreationTimes(gctx, profileID, now.AddDate(0, 0, -stats.PerformanceDays))
		return err
	})
	g.Go(func() (err error) {
		due, err = s.flashcardRepo.CountDue(gctx, profileID, now)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to load dashboard stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	sessions := stats.TodaySessions(scores, now)
	average := stats.AverageScore(scores)
	current := stats.CurrentStreak(activity, now)
	longest := max(stats.LongestStreak(activity, now.Location()), current)
	return &models.DashboardStats{
		Counts:           *counts,
		DueFlashcards:    due,
		AverageScore:     average,
		CompletionRate:   stats.CompletionRate(scores),
		LearningVelocity: stats.LearningVelocity(counts.Notes, firstNote, now),
		StudyMinutes:     stats.EstimatedStudyMinutes(scores),
		CurrentStreak:    current,
		LongestStreak:    longest,
		TodaySessions:    sessions,
		DailyGoal:        s.dailyGoal,
		TodayProgress:    stats.TodayProgress(sessions, s.dailyGoal),
		Maturity:         *maturity,
		Achievements:     stats.Achievements(*counts, average, longest),
		Performance:      stats.WeeklyPerformance(scores, *created, now),
	}, nil
}
