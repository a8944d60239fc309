package jobs

import (
	"context"
	"log/slog"
	"time"

	"parceltrack/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StalePendingReminderJob periodically nudges staff about deliveries that
// have been waiting for an agent too long. Runs every minute; the staleness
// threshold is fixed at construction.
type StalePendingReminderJob struct {
	handler    commands.RemindStalePendingCommandHandler
	staleAfter time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewStalePendingReminderJob creates a job that reminds staff about deliveries
// pending longer than staleAfter.
func NewStalePendingReminderJob(
	handler commands.RemindStalePendingCommandHandler,
	staleAfter time.Duration,
	logger *slog.Logger,
) *StalePendingReminderJob {
	return &StalePendingReminderJob{
		handler:    handler,
		staleAfter: staleAfter,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "stale_pending_reminder_job"),
	}
}

// Start begins the reminder job, running at the top of every minute.
func (j *StalePendingReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewRemindStalePendingCommand(j.staleAfter)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale pending reminder job misconfigured", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Stale pending reminder job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Stale pending reminder job started (running every minute)",
		"stale_after", j.staleAfter.String())
	return nil
}

// Stop stops the reminder job.
func (j *StalePendingReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale pending reminder job stopped")
}
