package commands

import (
	"errors"
	"strings"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

const DefaultOutboxBatchSize = 100

var ErrPublishOutboxEventsCommandIsNotConstructed = errors.New(
	"PublishOutboxEventsCommand must be created via NewPublishOutboxEventsCommand constructor",
)

// PublishOutboxEventsCommand relays up to batchSize stored events to the event sink.
// An empty destination publishes to the sink's default destination.
type PublishOutboxEventsCommand struct { //nolint:recvcheck //using for validation
	batchSize   int
	destination string

	guard guard.ConstructorGuard
}

// NewPublishOutboxEventsCommand uses DefaultOutboxBatchSize when batchSize is 0.
func NewPublishOutboxEventsCommand(batchSize int, destination string) (PublishOutboxEventsCommand, error) {
	if batchSize == 0 {
		batchSize = DefaultOutboxBatchSize
	}
	if batchSize < 0 {
		return PublishOutboxEventsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}

	return PublishOutboxEventsCommand{
		batchSize:   batchSize,
		destination: strings.TrimSpace(destination),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c PublishOutboxEventsCommand) Validate() error {
	return c.guard.Validate(ErrPublishOutboxEventsCommandIsNotConstructed)
}

func (c PublishOutboxEventsCommand) BatchSize() int {
	return c.batchSize
}

func (c PublishOutboxEventsCommand) Destination() string {
	return c.destination
}
