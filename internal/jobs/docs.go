// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are cron schedules built with github.com/robfig/cron/v3, using the six-field
// format with a leading seconds field.
//
// # Available Jobs
//
// OutboxRelayJob reads unpublished outbox events oldest first and hands them to the
// configured EventPublisher. A failed publication stops the batch; the remaining events
// stay in the outbox and are retried on the next run, so delivery is at least once.
//
// # Usage
//
//	jobManager, err := jobs.NewJobManager(publishEventsHandler, jobs.OutboxRelayConfig{
//		Schedule:  "*/5 * * * * *",
//		BatchSize: 100,
//	}, logger)
//	if err != nil {
//		return err
//	}
//	if err = jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
