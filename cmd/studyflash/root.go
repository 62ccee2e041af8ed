package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/studyflash/internal/config"
	"github.com/vytor/studyflash/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "studyflash",
	Short:         "Notes, generated flashcards and quizzes with spaced repetition",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringSlice("env-file", nil, "Load settings from these .env files (default ./.env)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads and validates the configuration, then installs the
// default logger at the configured level.
func loadConfig(cmd *cobra.Command) (config.Config, *logger.Logger, error) {
	files, _ := cmd.Flags().GetStringSlice("env-file")
	cfg := config.Load(files...)
	if err := cfg.Validate(); err != nil {
		return cfg, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)
	return cfg, log, nil
}
