package jobs

import (
	"context"
	"log/slog"

	"orders/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxSchedule runs the relay every second.
const DefaultOutboxSchedule = "* * * * * *"

// OutboxRelayConfig tunes the relay. Zero values select the defaults.
type OutboxRelayConfig struct {
	// Schedule is a cron spec with a leading seconds field.
	Schedule    string
	BatchSize   int
	Destination string
}

// OutboxRelayJob publishes committed outbox events on a schedule.
// A run that is still going when the next one is due causes that next run to be skipped, so at
// most one relay works on the outbox per process.
type OutboxRelayJob struct {
	handler  commands.PublishOutboxEventsCommandHandler
	command  commands.PublishOutboxEventsCommand
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOutboxRelayJob validates the batch size and destination up front.
func NewOutboxRelayJob(
	handler commands.PublishOutboxEventsCommandHandler,
	config OutboxRelayConfig,
	logger *slog.Logger,
) (*OutboxRelayJob, error) {
	cmd, err := commands.NewPublishOutboxEventsCommand(config.BatchSize, config.Destination)
	if err != nil {
		return nil, err
	}

	schedule := config.Schedule
	if schedule == "" {
		schedule = DefaultOutboxSchedule
	}

	return &OutboxRelayJob{
		handler:  handler,
		command:  cmd,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "outbox_relay_job"),
	}, nil
}

// Start schedules the relay. An invalid schedule is returned as an error.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// RunOnce publishes one batch and returns how many events went out.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) int {
	published, err := j.handler.Handle(ctx, j.command)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "published", published, "error", err)
		return published
	}

	if published > 0 {
		j.logger.DebugContext(ctx, "Outbox events published", "published", published)
	}
	return published
}

// Stop unschedules the relay and waits for a running batch to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
