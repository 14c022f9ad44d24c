// Package cli is the operator command line for the order service. Commands call the application
// handlers in process, against the same storage the server uses.
package cli

import (
	"encoding/json"
	"fmt"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"

	"github.com/spf13/cobra"
)

// Handlers groups the use cases reachable from the command line.
type Handlers struct {
	CreateOrder     commands.CreateOrderCommandHandler
	TransitionOrder commands.TransitionOrderCommandHandler
	CancelOrder     commands.CancelOrderCommandHandler
	PublishEvents   commands.PublishOutboxEventsCommandHandler

	GetOrder        queries.GetOrderQueryHandler
	SearchOrders    queries.SearchOrdersQueryHandler
	GetOrderPricing queries.GetOrderPricingQueryHandler
}

// NewRootCommand builds the "orders" command tree.
func NewRootCommand(h Handlers) *cobra.Command {
	root := &cobra.Command{
		Use:   "orders",
		Short: "Manage purchase orders",
		Long: `Operator tool for the order service.
Creates, inspects and moves orders through their lifecycle:
Pending, Confirmed, Shipped, Delivered, or Cancelled.

Orders are read from and written to the postgres database named by the
DB_* environment variables; DB_HOST is required.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newCreateCommand(h),
		newGetCommand(h),
		newListCommand(h),
		newCancelCommand(h),
		newTransitionCommand(h, "confirm", "Confirm a pending order"),
		newTransitionCommand(h, "ship", "Ship a confirmed order"),
		newTransitionCommand(h, "deliver", "Deliver a shipped order"),
		newPricingCommand(h),
		newPublishEventsCommand(h),
	)
	return root
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printOrder(cmd *cobra.Command, view queries.OrderView) {
	cmd.Printf("Order:     %s\n", view.OrderID)
	cmd.Printf("Customer:  %s\n", view.CustomerID)
	cmd.Printf("Status:    %s\n", view.Status)
	cmd.Printf("Total:     %s %s\n", view.Total, view.Currency)
	cmd.Printf("Created:   %s\n", view.CreatedAt.Format("2006-01-02 15:04:05"))
	if len(view.Items) == 0 {
		cmd.Println("Items:     none")
		return
	}

	cmd.Println("Items:")
	for _, item := range view.Items {
		cmd.Printf("  - %s (%s) x%d @ %s = %s\n",
			item.ProductName, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal)
	}
}

func printSummary(cmd *cobra.Command, view queries.OrderView) {
	cmd.Printf("  [%s] %s - Customer: %s - Total: %s %s\n",
		view.Status, view.OrderID, view.CustomerID, view.Total, view.Currency)
}
