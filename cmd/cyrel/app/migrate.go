package app

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cyrel-edt/cyrel/database"
	"github.com/cyrel-edt/cyrel/internal/config"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tool",
		Long:  `Manage the database schema version. Use with the 'up', 'down' or 'version' subcommands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Usage()
		},
	}

	cmd.PersistentFlags().BoolP("yes", "y", false, "Answer yes to all questions")
	cmd.PersistentFlags().UintP("num-steps", "n", 0, "Number of steps to migrate (0 = all)")

	cmd.AddCommand(newMigrateUpCmd())
	cmd.AddCommand(newMigrateDownCmd())
	cmd.AddCommand(newMigrateVersionCmd())
	return cmd
}

// migrationTarget loads the configuration and returns the database connection string
func migrationTarget(cmd *cobra.Command) (*config.DatabaseConfig, string, error) {
	v, err := newViper(cmd)
	if err != nil {
		return nil, "", err
	}
	cfg, err := loadConfig(v)
	if err != nil {
		return nil, "", err
	}
	if cfg.Database == nil {
		return nil, "", fmt.Errorf("database configuration is required")
	}
	connString, err := cfg.Database.GetConnectionString()
	if err != nil {
		return nil, "", fmt.Errorf("failed to build connection string: %w", err)
	}
	return cfg.Database, connString, nil
}

func numSteps(cmd *cobra.Command) (uint, error) {
	n, err := cmd.Flags().GetUint("num-steps")
	if err != nil {
		return 0, fmt.Errorf("failed to get num-steps flag: %w", err)
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("number of steps exceeds maximum allowed value")
	}
	return n, nil
}

// confirm asks prompt on the command output unless --yes was given
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return false, fmt.Errorf("failed to get yes flag: %w", err)
	}
	if yes {
		return true, nil
	}

	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (yes/no): ", prompt); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// reportVersion prints the schema version after a migration
func reportVersion(cmd *cobra.Command, connString string) error {
	version, dirty, err := database.GetVersion(connString)
	if err != nil {
		// An empty schema has no version
		slog.Warn("Failed to get migration version", "error", err)
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "Current migration version: none")
		return err
	}
	if dirty {
		slog.Warn("Schema is dirty, manual intervention may be required", "version", version)
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Current migration version: %d (dirty)\n", version)
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Current migration version: %d\n", version)
	return err
}
