package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleOrderExpiryJob cancels orders that have been waiting for confirmation
// longer than the configured window. Runs once per minute; the window itself
// is the business knob, the schedule only bounds how late an expiry can fire.
type StaleOrderExpiryJob struct {
	handler commands.ExpireStaleOrdersCommandHandler
	window  time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStaleOrderExpiryJob creates a job that expires stale orders older than
// the given confirmation window.
func NewStaleOrderExpiryJob(
	handler commands.ExpireStaleOrdersCommandHandler,
	window time.Duration,
	logger *slog.Logger,
) *StaleOrderExpiryJob {
	return &StaleOrderExpiryJob{
		handler: handler,
		window:  window,
		cron:    cron.New(),
		logger:  logger.With("component", "stale_order_expiry_job"),
	}
}

// Start schedules the expiry sweep to run every minute.
func (j *StaleOrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewExpireStaleOrdersCommand(j.window)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale order expiry command is invalid", "error", err)
			return
		}

		expired, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale order expiry sweep failed", "error", err)
			return
		}

		if expired > 0 {
			j.logger.InfoContext(ctx, "Expired stale orders", "count", expired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order expiry job started (running every minute)")
	return nil
}

// Stop stops the expiry job.
func (j *StaleOrderExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order expiry job stopped")
}
