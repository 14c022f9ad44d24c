package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewOrder is the body of POST /api/v1/orders.
type NewOrder struct {
	CustomerId string     `json:"customerId"`
	Items      []LineItem `json:"items,omitempty"`
}

// LineItem is one requested order line. Price keeps the literal JSON number so no precision is
// lost before it reaches the money parser.
type LineItem struct {
	ProductId   string      `json:"productId"`
	ProductName string      `json:"productName"`
	Quantity    int         `json:"quantity"`
	Price       json.Number `json:"price"`
	Currency    *string     `json:"currency,omitempty"`
}

// CancelRequest is the optional body of POST /api/v1/orders/{orderId}/cancel.
type CancelRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// SearchOrdersParams defines parameters for SearchOrders.
type SearchOrdersParams struct {
	CustomerId *string    `form:"customerId,omitempty" json:"customerId,omitempty"`
	Status     *string    `form:"status,omitempty" json:"status,omitempty"`
	From       *time.Time `form:"from,omitempty" json:"from,omitempty"`
	To         *time.Time `form:"to,omitempty" json:"to,omitempty"`
	Page       *int       `form:"page,omitempty" json:"page,omitempty"`
	Size       *int       `form:"size,omitempty" json:"size,omitempty"`
}

// CreateOrderParams defines parameters for CreateOrder.
type CreateOrderParams struct {
	IdempotencyKey *string `json:"Idempotency-Key,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Search orders
	// (GET /api/v1/orders)
	SearchOrders(ctx echo.Context, params SearchOrdersParams) error
	// Create an order
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context, params CreateOrderParams) error
	// Get an order
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId string) error
	// Delete an order
	// (DELETE /api/v1/orders/{orderId})
	DeleteOrder(ctx echo.Context, orderId string) error
	// Add a line to a pending order
	// (POST /api/v1/orders/{orderId}/lines)
	AddOrderLine(ctx echo.Context, orderId string) error
	// Remove a line from a pending order
	// (DELETE /api/v1/orders/{orderId}/lines/{productId})
	RemoveOrderLine(ctx echo.Context, orderId string, productId string) error
	// Confirm a pending order
	// (POST /api/v1/orders/{orderId}/confirm)
	ConfirmOrder(ctx echo.Context, orderId string) error
	// Ship a confirmed order
	// (POST /api/v1/orders/{orderId}/ship)
	ShipOrder(ctx echo.Context, orderId string) error
	// Deliver a shipped order
	// (POST /api/v1/orders/{orderId}/deliver)
	DeliverOrder(ctx echo.Context, orderId string) error
	// Cancel an order that is not delivered or cancelled
	// (POST /api/v1/orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderId string) error
	// Price breakdown of an order
	// (GET /api/v1/orders/{orderId}/pricing)
	GetOrderPricing(ctx echo.Context, orderId string) error
	// Orders of one customer, oldest first
	// (GET /api/v1/customers/{customerId}/orders)
	GetCustomerOrders(ctx echo.Context, customerId string) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// SearchOrders converts echo context to params.
func (w *ServerInterfaceWrapper) SearchOrders(ctx echo.Context) error {
	var params SearchOrdersParams
	query := ctx.QueryParams()

	if err := runtime.BindQueryParameter("form", true, false, "customerId", query, &params.CustomerId); err != nil {
		return invalidParameter("customerId", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "status", query, &params.Status); err != nil {
		return invalidParameter("status", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "from", query, &params.From); err != nil {
		return invalidParameter("from", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "to", query, &params.To); err != nil {
		return invalidParameter("to", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", query, &params.Page); err != nil {
		return invalidParameter("page", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "size", query, &params.Size); err != nil {
		return invalidParameter("size", err)
	}

	return w.Handler.SearchOrders(ctx, params)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	var params CreateOrderParams

	if values, found := ctx.Request().Header[http.CanonicalHeaderKey("Idempotency-Key")]; found {
		if n := len(values); n != 1 {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Expected one value for Idempotency-Key, got %d", n))
		}

		var key string
		err := runtime.BindStyledParameterWithOptions("simple", "Idempotency-Key", values[0], &key,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
		if err != nil {
			return invalidParameter("Idempotency-Key", err)
		}
		params.IdempotencyKey = &key
	}

	return w.Handler.CreateOrder(ctx, params)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderID, err := bindPathParameter(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderID)
}

// DeleteOrder converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	orderID, err := bindPathParameter(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.DeleteOrder(ctx, orderID)
}

// AddOrderLine converts echo context to params.
func (w *ServerInterfaceWrapper) AddOrderLine(ctx echo.Context) error {
	orderID, err := bindPathParameter(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.AddOrderLine(ctx, orderID)
}

// RemoveOrderLine converts echo context to params.
func (w *ServerInterfaceWrapper) RemoveOrderLine(ctx echo.Context) error {
	orderID, err := bindPathParameter(ctx, "orderId")
	if err != nil {
		return err
	}
	productID, err := bindPathParameter(ctx, "productId")
	if err != nil {
		return err
	}
	return w.Handler.RemoveOrderLine(ctx, orderID, productID)
}

// ConfirmOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ConfirmOrder(ctx echo.Context) error {
	orderID, err := bindPathParameter(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ConfirmOrder(ctx, orderID)
}

// ShipOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ShipOrder(ctx echo.Context) error {
	orderID, err := bindPathParameter(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ShipOrder(ctx, orderID)
}

// DeliverOrder converts echo context to params.
func (w *ServerInterfaceWrapper) DeliverOrder(ctx echo.Context) error {
	orderID, err := bindPathParameter(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.DeliverOrder(ctx, orderID)
}

// CancelOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderID, err := bindPathParameter(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, orderID)
}

// GetOrderPricing converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderPricing(ctx echo.Context) error {
	orderID, err := bindPathParameter(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrderPricing(ctx, orderID)
}

// GetCustomerOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetCustomerOrders(ctx echo.Context) error {
	customerID, err := bindPathParameter(ctx, "customerId")
	if err != nil {
		return err
	}
	return w.Handler.GetCustomerOrders(ctx, customerID)
}

func bindPathParameter(ctx echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", invalidParameter(name, err)
	}
	return value, nil
}

func invalidParameter(name string, err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter. Middleware m runs on every API
// route and nowhere else.
func RegisterHandlers(router EchoRouter, si ServerInterface, m ...echo.MiddlewareFunc) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET("/api/v1/orders", wrapper.SearchOrders, m...)
	router.POST("/api/v1/orders", wrapper.CreateOrder, m...)
	router.GET("/api/v1/orders/:orderId", wrapper.GetOrder, m...)
	router.DELETE("/api/v1/orders/:orderId", wrapper.DeleteOrder, m...)
	router.POST("/api/v1/orders/:orderId/lines", wrapper.AddOrderLine, m...)
	router.DELETE("/api/v1/orders/:orderId/lines/:productId", wrapper.RemoveOrderLine, m...)
	router.POST("/api/v1/orders/:orderId/confirm", wrapper.ConfirmOrder, m...)
	router.POST("/api/v1/orders/:orderId/ship", wrapper.ShipOrder, m...)
	router.POST("/api/v1/orders/:orderId/deliver", wrapper.DeliverOrder, m...)
	router.POST("/api/v1/orders/:orderId/cancel", wrapper.CancelOrder, m...)
	router.GET("/api/v1/orders/:orderId/pricing", wrapper.GetOrderPricing, m...)
	router.GET("/api/v1/customers/:customerId/orders", wrapper.GetCustomerOrders, m...)
}
