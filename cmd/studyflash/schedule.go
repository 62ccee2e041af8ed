package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/studyflash/internal/flashcard"
)

var scheduleCmd = newScheduleCmd()

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the review state a rating would produce",
		Long: `Runs the spaced-repetition scheduler once without touching the database.

Example:
  studyflash schedule --interval 6 --ease 2.5 --reps 2 --rating easy`,
		Args: cobra.NoArgs,
		RunE: runSchedule,
	}
	cmd.Flags().Int("interval", flashcard.DefaultIntervalDays, "Current interval in days")
	cmd.Flags().Float64("ease", flashcard.DefaultEase, "Current ease factor")
	cmd.Flags().Int("reps", 0, "Current consecutive successful repetitions")
	cmd.Flags().String("rating", "", "Rating to apply: hard, medium or easy")
	cmd.Flags().String("now", "", "Review time as RFC 3339 (default current time)")
	_ = cmd.MarkFlagRequired("rating")
	return cmd
}

func runSchedule(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	interval, _ := flags.GetInt("interval")
	ease, _ := flags.GetFloat64("ease")
	reps, _ := flags.GetInt("reps")
	ratingText, _ := flags.GetString("rating")
	nowText, _ := flags.GetString("now")

	rating, err := flashcard.ParseRating(ratingText)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if nowText != "" {
		now, err = time.Parse(time.RFC3339, nowText)
		if err != nil {
			return fmt.Errorf("invalid --now: %w", err)
		}
	}

	current := flashcard.ReviewState{
		IntervalDays: interval,
		EaseFactor:   ease,
		Repetitions:  reps,
		NextReviewAt: now,
	}
	next, err := flashcard.NextState(current, rating, now)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(next)
}
