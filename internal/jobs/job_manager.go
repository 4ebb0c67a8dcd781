package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleOrderExpiryJob *StaleOrderExpiryJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	expireStaleOrdersHandler commands.ExpireStaleOrdersCommandHandler,
	confirmationWindow time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleOrderExpiryJob: NewStaleOrderExpiryJob(expireStaleOrdersHandler, confirmationWindow, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.staleOrderExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale order expiry job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleOrderExpiryJob.Stop()
}
