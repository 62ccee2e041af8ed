package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/studyflash/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and list the applied ones",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer database.Close()

		applied, err := database.AppliedMigrations(cmd.Context())
		if err != nil {
			return fmt.Errorf("list migrations: %w", err)
		}
		for _, v := range applied {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}
		return nil
	},
}
