package jobs

import (
	"fmt"
	"log/slog"

	"orders/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	outboxRelayJob *OutboxRelayJob
}

// NewJobManager creates the jobs from their command handlers.
func NewJobManager(
	publishEventsHandler commands.PublishOutboxEventsCommandHandler,
	outboxConfig OutboxRelayConfig,
	logger *slog.Logger,
) (*JobManager, error) {
	outboxRelayJob, err := NewOutboxRelayJob(publishEventsHandler, outboxConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create outbox relay job: %w", err)
	}

	return &JobManager{outboxRelayJob: outboxRelayJob}, nil
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
}
