package cli

import (
	"fmt"

	"orders/internal/core/application/usecases/commands"

	"github.com/spf13/cobra"
)

func newPublishEventsCommand(h Handlers) *cobra.Command {
	var (
		batchSize   int
		destination string
	)

	cmd := &cobra.Command{
		Use:   "publish-events",
		Short: "Publish pending outbox events once",
		Long: `Publishes up to --batch unpublished events, oldest first, and stops at the first failure.
Events that were not published stay in the outbox for the next run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			command, err := commands.NewPublishOutboxEventsCommand(batchSize, destination)
			if err != nil {
				return err
			}

			published, err := h.PublishEvents.Handle(cmd.Context(), command)
			cmd.Printf("Published %d event(s).\n", published)
			if err != nil {
				return fmt.Errorf("publish stopped: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch", commands.DefaultOutboxBatchSize, "maximum number of events")
	cmd.Flags().StringVar(&destination, "destination", "", "topic to publish to instead of the default")
	return cmd
}
