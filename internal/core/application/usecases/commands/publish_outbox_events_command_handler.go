package commands

import (
	"context"

	"orders/internal/core/ports"
)

// PublishOutboxEventsCommandHandler moves events from the outbox to the event sink.
//
// Messages are published oldest first. Each one is marked published in its own transaction
// right after the sink accepts it, so a crash between the two republishes that single message.
// The first failure stops the batch; the remaining messages stay for the next run.
type PublishOutboxEventsCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
}

func NewPublishOutboxEventsCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
) PublishOutboxEventsCommandHandler {
	return PublishOutboxEventsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns the number of events published in this run.
func (h PublishOutboxEventsCommandHandler) Handle(ctx context.Context, cmd PublishOutboxEventsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	messages, err := h.unpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	published := 0
	for _, message := range messages {
		if err = h.publish(ctx, message, cmd.Destination()); err != nil {
			return published, err
		}

		if err = h.markPublished(ctx, message); err != nil {
			return published, err
		}
		published++
	}

	return published, nil
}

func (h PublishOutboxEventsCommandHandler) publish(ctx context.Context, message ports.OutboxMessage, destination string) error {
	if destination == "" {
		return h.publisher.Publish(ctx, message.Event)
	}
	return h.publisher.PublishTo(ctx, message.Event, destination)
}

func (h PublishOutboxEventsCommandHandler) unpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	messages, err := uow.OutboxRepository().GetUnpublished(ctx, limit)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return messages, nil
}

func (h PublishOutboxEventsCommandHandler) markPublished(ctx context.Context, message ports.OutboxMessage) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OutboxRepository().MarkPublished(ctx, message.ID); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
