package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cyrel-edt/cyrel/internal/app"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Import data from Celcat once and exit",
	}

	coursesCmd := &cobra.Command{
		Use:   "courses",
		Short: "Import the course timetables of every group, or of the given groups",
		Example: `  cyrel sync courses --config config.yaml
  cyrel sync courses --config config.yaml --group 12 --group 14`,
		RunE: runSyncCourses,
	}
	coursesCmd.Flags().Int32Slice("group", nil, "Only import these group ids")

	studentsCmd := &cobra.Command{
		Use:   "students",
		Short: "Import the student directory",
		RunE:  runSyncStudents,
	}

	cmd.AddCommand(coursesCmd, studentsCmd)
	return cmd
}

// newWorker loads the configuration and builds the sync components
func newWorker(cmd *cobra.Command) (*app.Worker, error) {
	v, err := newViper(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(v)
	if err != nil {
		return nil, err
	}
	worker, err := app.NewWorker(cmdContext(cmd), app.WithConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to build sync worker: %w", err)
	}
	return worker, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runSyncCourses(cmd *cobra.Command, _ []string) error {
	groups, err := cmd.Flags().GetInt32Slice("group")
	if err != nil {
		return err
	}

	worker, err := newWorker(cmd)
	if err != nil {
		return err
	}
	defer worker.Close()

	summary, err := worker.Jobs().SyncCourses(cmdContext(cmd), groups...)
	if err != nil {
		return err
	}

	slog.Info("Course sync finished", "run_id", summary.RunID.String(), "summary", summary.String())
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), summary.String()); err != nil {
		return err
	}
	if len(summary.Failed) > 0 {
		slog.Warn("Some groups failed", "groups", summary.FailedGroups())
	}
	return summary.Err()
}

func runSyncStudents(cmd *cobra.Command, _ []string) error {
	worker, err := newWorker(cmd)
	if err != nil {
		return err
	}
	defer worker.Close()

	summary, err := worker.Jobs().SyncStudents(cmdContext(cmd))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d students listed, %d stored, %d skipped\n",
		summary.Listed, summary.Stored, summary.Skipped)
	return err
}
