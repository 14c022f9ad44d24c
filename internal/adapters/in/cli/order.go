package cli

import (
	"fmt"
	"strconv"
	"strings"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"

	"github.com/spf13/cobra"
)

func newCreateCommand(h Handlers) *cobra.Command {
	var (
		customerID string
		items      []string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an order",
		Long: `Creates a pending order. Each --item is productId:name:quantity:price[:currency],
for example --item p1:Widget:2:10.00. The currency defaults to USD.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lineItems := make([]commands.LineItem, 0, len(items))
			for _, raw := range items {
				item, err := parseItem(raw)
				if err != nil {
					return err
				}
				lineItems = append(lineItems, item)
			}

			command, err := commands.NewCreateOrderCommand(customerID, lineItems)
			if err != nil {
				return err
			}

			orderID, err := h.CreateOrder.Handle(cmd.Context(), command)
			if err != nil {
				return fmt.Errorf("create failed: %w", err)
			}

			return showOrder(cmd, h, orderID.String(), asJSON)
		},
	}

	cmd.Flags().StringVar(&customerID, "customer", "", "customer ID")
	cmd.Flags().StringArrayVar(&items, "item", nil, "order line as productId:name:quantity:price[:currency]")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	_ = cmd.MarkFlagRequired("customer")
	return cmd
}

func newGetCommand(h Handlers) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get [order-id]",
		Short: "Show an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showOrder(cmd, h, args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func newListCommand(h Handlers) *cobra.Command {
	var (
		filter services.OrderFilter
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := services.NewOrderQuery(filter)
			if err != nil {
				return err
			}

			views, err := h.SearchOrders.Handle(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("list failed: %w", err)
			}

			if asJSON {
				return printJSON(cmd, views)
			}
			if len(views) == 0 {
				cmd.Println("No orders found.")
				return nil
			}

			cmd.Println("Orders:")
			for _, view := range views {
				printSummary(cmd, view)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.CustomerID, "customer", "", "filter by customer ID")
	cmd.Flags().StringVar(&filter.Status, "status", "", "filter by status")
	cmd.Flags().IntVar(&filter.Page, "page", services.DefaultPage, "page number, from 0")
	cmd.Flags().IntVar(&filter.Size, "size", services.DefaultPageSize, "page size")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func newCancelCommand(h Handlers) *cobra.Command {
	var (
		reason string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "cancel [order-id]",
		Short: "Cancel an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command, err := commands.NewCancelOrderCommand(args[0], reason)
			if err != nil {
				return err
			}

			if err = h.CancelOrder.Handle(cmd.Context(), command); err != nil {
				return fmt.Errorf("cancel failed: %w", err)
			}

			return showOrder(cmd, h, args[0], asJSON)
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "cancellation reason")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

// newTransitionCommand builds confirm, ship and deliver; name is the operation.
func newTransitionCommand(h Handlers, name, short string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   name + " [order-id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			operation, err := order.ParseOperation(name)
			if err != nil {
				return err
			}

			command, err := commands.NewTransitionOrderCommand(args[0], operation)
			if err != nil {
				return err
			}

			if err = h.TransitionOrder.Handle(cmd.Context(), command); err != nil {
				return fmt.Errorf("%s failed: %w", name, err)
			}

			return showOrder(cmd, h, args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func newPricingCommand(h Handlers) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "pricing [order-id]",
		Short: "Show the price breakdown of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := queries.NewGetOrderQuery(args[0])
			if err != nil {
				return err
			}

			view, err := h.GetOrderPricing.Handle(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("pricing failed: %w", err)
			}

			if asJSON {
				return printJSON(cmd, view)
			}

			cmd.Printf("Order:     %s\n", view.OrderID)
			cmd.Printf("Subtotal:  %s %s\n", view.Subtotal, view.Currency)
			cmd.Printf("Discount: -%s\n", view.Discount)
			cmd.Printf("Tax:       %s\n", view.Tax)
			cmd.Printf("Shipping:  %s\n", view.Shipping)
			cmd.Printf("Final:     %s %s\n", view.FinalPrice, view.Currency)
			if !view.MeetsMinimum {
				cmd.Println("Below the minimum order amount.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func showOrder(cmd *cobra.Command, h Handlers, orderID string, asJSON bool) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return err
	}

	view, err := h.GetOrder.Handle(cmd.Context(), query)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(cmd, view)
	}
	printOrder(cmd, view)
	return nil
}

// parseItem reads productId:name:quantity:price[:currency].
func parseItem(raw string) (commands.LineItem, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 4 && len(parts) != 5 {
		return commands.LineItem{}, fmt.Errorf("invalid item %q: want productId:name:quantity:price[:currency]", raw)
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return commands.LineItem{}, fmt.Errorf("invalid item %q: quantity: %w", raw, err)
	}

	item := commands.LineItem{
		ProductID:   strings.TrimSpace(parts[0]),
		ProductName: strings.TrimSpace(parts[1]),
		Quantity:    quantity,
		UnitPrice:   strings.TrimSpace(parts[3]),
	}
	if len(parts) == 5 {
		item.Currency = strings.TrimSpace(parts[4])
	}
	return item, nil
}
