package http_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	orderhttp "orders/internal/adapters/in/http"
	"orders/internal/adapters/out/memory"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type orderUoWFactory struct {
	factory *memory.UnitOfWorkFactory
}

func (f orderUoWFactory) Create() commands.OrderUoW {
	return f.factory.Create()
}

// newAPI wires the real use cases over an in-memory store.
func newAPI(t *testing.T, idempotency ports.IdempotencyStore) *echo.Echo {
	t.Helper()

	store := memory.NewStore()
	uows := orderUoWFactory{factory: memory.NewUnitOfWorkFactory(store)}
	orders := memory.NewOrderRepository(store)
	pricing, err := services.NewPricingService(services.DefaultPricingPolicy())
	require.NoError(t, err)

	server := orderhttp.NewServer(orderhttp.Handlers{
		CreateOrder:       commands.NewCreateOrderCommandHandler(uows),
		AddOrderLine:      commands.NewAddOrderLineCommandHandler(uows),
		RemoveOrderLine:   commands.NewRemoveOrderLineCommandHandler(uows),
		TransitionOrder:   commands.NewTransitionOrderCommandHandler(uows),
		CancelOrder:       commands.NewCancelOrderCommandHandler(uows),
		DeleteOrder:       commands.NewDeleteOrderCommandHandler(uows),
		GetOrder:          queries.NewGetOrderQueryHandler(orders),
		GetCustomerOrders: queries.NewGetCustomerOrdersQueryHandler(orders),
		SearchOrders:      queries.NewSearchOrdersQueryHandler(orders),
		GetOrderPricing:   queries.NewGetOrderPricingQueryHandler(orders, pricing),
	}, idempotency, slog.New(slog.DiscardHandler))

	e, err := orderhttp.NewEcho(server, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return e
}

func call(e *echo.Echo, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) orderhttp.Error {
	t.Helper()

	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decode[orderhttp.Error](t, rec)
	require.Equal(t, code, body.Code)
	return body
}

const widgetOrder = `{"customerId":"c1","items":[{"productId":"p1","productName":"Widget","quantity":2,"price":10.00}]}`

func createOrder(t *testing.T, e *echo.Echo, body string) queries.OrderView {
	t.Helper()

	rec := call(e, http.MethodPost, "/api/v1/orders", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[queries.OrderView](t, rec)
}
