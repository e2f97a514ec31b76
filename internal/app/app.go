// Package app wires cyrel's components together and manages their lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cyrel-edt/cyrel/internal/config"
	"github.com/cyrel-edt/cyrel/internal/sync/scheduler"
)

// App is the API server with its optional periodic course sync
type App struct {
	config     *config.Config
	components *AppComponents
	httpServer *http.Server
	scheduler  *scheduler.Scheduler

	ctx        context.Context
	cancelFunc context.CancelFunc
}

// Start starts the periodic sync, if any, then serves HTTP.
// It blocks until the server stops.
func (app *App) Start() error {
	if app.scheduler != nil {
		go func() {
			if err := app.scheduler.Start(app.ctx); err != nil {
				slog.Error("Sync scheduler failed", "error", err)
			}
		}()
	}

	slog.Info("Server listening", "address", app.httpServer.Addr)
	if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

// Stop waits for a running sync to notice cancellation, then shuts the
// server down within timeout and releases storage
func (app *App) Stop(timeout time.Duration) error {
	slog.Info("Shutting down server...")

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	err := app.httpServer.Shutdown(shutdownCtx)

	if app.cancelFunc != nil {
		app.cancelFunc()
	}

	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	slog.Info("Server shutdown complete")
	return nil
}

// GetConfig returns the application configuration
func (app *App) GetConfig() *config.Config {
	return app.config
}

// GetHTTPServer returns the HTTP server
func (app *App) GetHTTPServer() *http.Server {
	return app.httpServer
}

// Jobs returns the sync jobs, for triggering a run outside the schedule
func (app *App) Jobs() *SyncJobs {
	return app.components.Jobs
}

// Worker holds the components of a one-shot sync command
type Worker struct {
	components *AppComponents
	cleanup    func()
}

// Jobs returns the sync jobs
func (w *Worker) Jobs() *SyncJobs {
	return w.components.Jobs
}

// Close releases storage
func (w *Worker) Close() {
	if w.cleanup != nil {
		w.cleanup()
	}
}
