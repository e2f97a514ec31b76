package app

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cyrel-edt/cyrel/database"
)

func newMigrateDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Revert database migrations",
		Long: `Revert database migrations.
WARNING: This operation can result in data loss.`,
		Example: `  # Revert the last migration
  cyrel migrate down --config config.yaml --num-steps 1 --yes

  # Revert everything (destroys all data)
  cyrel migrate down --config config.yaml --yes`,
		RunE: runMigrateDown,
	}
}

func runMigrateDown(cmd *cobra.Command, _ []string) error {
	steps, err := numSteps(cmd)
	if err != nil {
		return err
	}
	_, connString, err := migrationTarget(cmd)
	if err != nil {
		return err
	}

	prompt := fmt.Sprintf("WARNING: This will revert %d migration(s) and may result in data loss. Continue?", steps)
	if steps == 0 {
		prompt = "WARNING: This will revert ALL migrations and destroy all data. Continue?"
	}
	ok, err := confirm(cmd, prompt)
	if err != nil {
		return err
	}
	if !ok {
		slog.Info("Migration cancelled by user")
		return fmt.Errorf("migration cancelled by user")
	}

	if steps == 0 {
		slog.Warn("Reverting all migrations")
	} else {
		slog.Info("Reverting migrations", "steps", steps)
	}
	if err := database.MigrateDown(connString, steps); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	slog.Info("Migration completed successfully")

	return reportVersion(cmd, connString)
}

func newMigrateVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, connString, err := migrationTarget(cmd)
			if err != nil {
				return err
			}
			return reportVersion(cmd, connString)
		},
	}
}
