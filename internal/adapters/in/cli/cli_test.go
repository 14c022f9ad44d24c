package cli_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"orders/internal/adapters/in/cli"
	"orders/internal/adapters/out/eventlog"
	"orders/internal/adapters/out/memory"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/services"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderUoWFactory struct {
	factory *memory.UnitOfWorkFactory
}

func (f orderUoWFactory) Create() commands.OrderUoW {
	return f.factory.Create()
}

type outboxUoWFactory struct {
	factory *memory.UnitOfWorkFactory
}

func (f outboxUoWFactory) Create() commands.OutboxUoW {
	return f.factory.Create()
}

type harness struct {
	t        *testing.T
	handlers cli.Handlers
	events   *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store := memory.NewStore()
	uows := memory.NewUnitOfWorkFactory(store)
	orders := memory.NewOrderRepository(store)
	pricing, err := services.NewPricingService(services.DefaultPricingPolicy())
	require.NoError(t, err)

	events := new(bytes.Buffer)
	publisher := eventlog.NewPublisher(slog.New(slog.NewJSONHandler(events, nil)))

	return &harness{
		t:      t,
		events: events,
		handlers: cli.Handlers{
			CreateOrder:     commands.NewCreateOrderCommandHandler(orderUoWFactory{uows}),
			TransitionOrder: commands.NewTransitionOrderCommandHandler(orderUoWFactory{uows}),
			CancelOrder:     commands.NewCancelOrderCommandHandler(orderUoWFactory{uows}),
			PublishEvents:   commands.NewPublishOutboxEventsCommandHandler(outboxUoWFactory{uows}, publisher),
			GetOrder:        queries.NewGetOrderQueryHandler(orders),
			SearchOrders:    queries.NewSearchOrdersQueryHandler(orders),
			GetOrderPricing: queries.NewGetOrderPricingQueryHandler(orders, pricing),
		},
	}
}

// run executes one command line on a fresh command tree.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()

	out := new(bytes.Buffer)
	root := cli.NewRootCommand(h.handlers)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func (h *harness) createOrder(args ...string) queries.OrderView {
	h.t.Helper()

	out, err := h.run(append([]string{"create", "--json"}, args...)...)
	require.NoError(h.t, err, out)

	var view queries.OrderView
	require.NoError(h.t, json.Unmarshal([]byte(out), &view), out)
	return view
}

func TestCreate(t *testing.T) {
	h := newHarness(t)

	view := h.createOrder("--customer", "c1", "--item", "p1:Widget:2:10.00", "--item", "p2:Gadget:1:5.50")

	assert.Equal(t, "c1", view.CustomerID)
	assert.Equal(t, "Pending", view.Status)
	assert.Equal(t, "25.50", view.Total)
	assert.Len(t, view.Items, 2)
}

func TestCreate_TextOutput(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("create", "--customer", "c1", "--item", "p1:Widget:2:10.00")

	require.NoError(t, err)
	assert.Contains(t, out, "Status:    Pending")
	assert.Contains(t, out, "Total:     20.00 USD")
	assert.Contains(t, out, "- Widget (p1) x2 @ 10.00 = 20.00")
}

func TestCreate_Rejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing customer", []string{"create", "--item", "p1:Widget:1:1"}, `required flag(s) "customer" not set`},
		{"malformed item", []string{"create", "--customer", "c1", "--item", "p1:Widget"}, "invalid item"},
		{"bad quantity", []string{"create", "--customer", "c1", "--item", "p1:Widget:two:1"}, "quantity"},
		{"zero quantity", []string{"create", "--customer", "c1", "--item", "p1:Widget:0:1"}, "quantity"},
		{"mixed currencies", []string{"create", "--customer", "c1", "--item", "p1:Widget:1:1", "--item", "p2:Gadget:1:1:EUR"}, "currency mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newHarness(t).run(tt.args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGet(t *testing.T) {
	h := newHarness(t)
	created := h.createOrder("--customer", "c1", "--item", "p1:Widget:2:10.00")

	out, err := h.run("get", created.OrderID)
	require.NoError(t, err)
	assert.Contains(t, out, created.OrderID)

	_, err = h.run("get", "missing")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = h.run("get")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestLifecycle(t *testing.T) {
	h := newHarness(t)
	id := h.createOrder("--customer", "c1", "--item", "p1:Widget:2:10.00").OrderID

	for _, step := range []struct{ command, status string }{
		{"confirm", "Confirmed"},
		{"ship", "Shipped"},
		{"deliver", "Delivered"},
	} {
		out, err := h.run(step.command, id)
		require.NoError(t, err, out)
		assert.Contains(t, out, "Status:    "+step.status)
	}

	_, err := h.run("cancel", id, "--reason", "too late")
	require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
}

func TestCancel(t *testing.T) {
	h := newHarness(t)
	id := h.createOrder("--customer", "c1", "--item", "p1:Widget:2:10.00").OrderID

	out, err := h.run("cancel", id, "--reason", "changed mind", "--json")

	require.NoError(t, err)
	var view queries.OrderView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "Cancelled", view.Status)
}

func TestConfirm_EmptyOrder(t *testing.T) {
	h := newHarness(t)
	id := h.createOrder("--customer", "c1").OrderID

	_, err := h.run("confirm", id)

	require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
}

func TestList(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("list")
	require.NoError(t, err)
	assert.Contains(t, out, "No orders found.")

	first := h.createOrder("--customer", "c1", "--item", "p1:Widget:2:10.00").OrderID
	h.createOrder("--customer", "c2", "--item", "p1:Widget:1:10.00")
	_, err = h.run("cancel", first)
	require.NoError(t, err)

	out, err = h.run("list")
	require.NoError(t, err)
	assert.Contains(t, out, "[Cancelled] "+first+" - Customer: c1 - Total: 20.00 USD")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"all", nil, 2},
		{"by customer", []string{"--customer", "c2"}, 1},
		{"by status", []string{"--status", "cancelled"}, 1},
		{"paged", []string{"--size", "1", "--page", "1"}, 1},
		{"past the end", []string{"--size", "1", "--page", "2"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.run(append([]string{"list", "--json"}, tt.args...)...)
			require.NoError(t, err)

			var views []queries.OrderView
			require.NoError(t, json.Unmarshal([]byte(out), &views), out)
			assert.Len(t, views, tt.want)
		})
	}

	_, err = h.run("list", "--page", "-1")
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestPricing(t *testing.T) {
	h := newHarness(t)
	id := h.createOrder("--customer", "c1", "--item", "p1:Widget:2:60.00").OrderID

	out, err := h.run("pricing", id, "--json")
	require.NoError(t, err)

	var view queries.PricingView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "130.68", view.FinalPrice)
	assert.True(t, view.MeetsMinimum)

	small := h.createOrder("--customer", "c1", "--item", "p1:Widget:1:5.00").OrderID
	out, err = h.run("pricing", small)
	require.NoError(t, err)
	assert.Contains(t, out, "Shipping:  5.99")
	assert.Contains(t, out, "Below the minimum order amount.")
}

func TestPublishEvents(t *testing.T) {
	h := newHarness(t)
	id := h.createOrder("--customer", "c1", "--item", "p1:Widget:2:10.00").OrderID
	_, err := h.run("cancel", id, "--reason", "changed mind")
	require.NoError(t, err)

	out, err := h.run("publish-events", "--batch", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Published 1 event(s).")
	assert.Contains(t, h.events.String(), `"event_type":"OrderCreated"`)

	out, err = h.run("publish-events")
	require.NoError(t, err)
	assert.Contains(t, out, "Published 1 event(s).")
	assert.Contains(t, h.events.String(), `"event_type":"OrderCancelled"`)

	out, err = h.run("publish-events")
	require.NoError(t, err)
	assert.Contains(t, out, "Published 0 event(s).")

	_, err = h.run("publish-events", "--batch", "-1")
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
