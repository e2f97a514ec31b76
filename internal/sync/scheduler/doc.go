// Package scheduler runs course imports periodically inside the server process.
//
// The scheduler owns a single loop: it runs the job once at startup (when
// configured to), then waits for the jittered interval and runs it again.
// Runs never overlap. A failing run is logged and the loop keeps going, since
// the next run rebuilds every group association from scratch anyway.
//
// # Usage Example
//
//	sched := scheduler.New(
//	    scheduler.JobFunc(func(ctx context.Context) error {
//	        _, err := runner.Run(ctx)
//	        return err
//	    }),
//	    scheduler.WithInterval(6*time.Hour),
//	)
//
//	go func() {
//	    if err := sched.Start(ctx); err != nil {
//	        slog.Error("Scheduler failed", "error", err)
//	    }
//	}()
//	defer sched.Stop()
//
// Stop cancels the run in progress and blocks until the loop has returned.
package scheduler
