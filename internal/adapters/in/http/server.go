// Package http exposes the order use cases as a REST API under /api/v1.
//
// The routes and request shapes are described by the embedded openapi.yaml; every request is
// validated against it before reaching a handler, and the same document is served at /swagger/.
package http

import (
	"log/slog"
	"net/http"
	"strings"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// HeaderIdempotentReplayed marks a response that repeats the result of an earlier request.
const HeaderIdempotentReplayed = "Idempotent-Replayed"

// Handlers groups the use cases served by the API.
type Handlers struct {
	CreateOrder     commands.CreateOrderCommandHandler
	AddOrderLine    commands.AddOrderLineCommandHandler
	RemoveOrderLine commands.RemoveOrderLineCommandHandler
	TransitionOrder commands.TransitionOrderCommandHandler
	CancelOrder     commands.CancelOrderCommandHandler
	DeleteOrder     commands.DeleteOrderCommandHandler

	GetOrder          queries.GetOrderQueryHandler
	GetCustomerOrders queries.GetCustomerOrdersQueryHandler
	SearchOrders      queries.SearchOrdersQueryHandler
	GetOrderPricing   queries.GetOrderPricingQueryHandler
}

// Server implements ServerInterface on top of the application handlers.
type Server struct {
	handlers    Handlers
	idempotency ports.IdempotencyStore
	logger      *slog.Logger
}

// NewServer creates the API server. A nil idempotency store disables Idempotency-Key handling.
func NewServer(handlers Handlers, idempotency ports.IdempotencyStore, logger *slog.Logger) *Server {
	return &Server{
		handlers:    handlers,
		idempotency: idempotency,
		logger:      logger.With("component", "http"),
	}
}

var _ ServerInterface = (*Server)(nil)

func (s *Server) SearchOrders(ctx echo.Context, params SearchOrdersParams) error {
	query, err := services.NewOrderQuery(services.OrderFilter{
		CustomerID: deref(params.CustomerId),
		Status:     deref(params.Status),
		From:       params.From,
		To:         params.To,
		Page:       deref(params.Page),
		Size:       deref(params.Size),
	})
	if err != nil {
		return err
	}

	views, err := s.handlers.SearchOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, views)
}

func (s *Server) CreateOrder(ctx echo.Context, params CreateOrderParams) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}

	items := make([]commands.LineItem, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, item.toCommand())
	}

	cmd, err := commands.NewCreateOrderCommand(body.CustomerId, items)
	if err != nil {
		return err
	}

	key := strings.TrimSpace(deref(params.IdempotencyKey))
	if key == "" || s.idempotency == nil {
		orderID, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
		if err != nil {
			return err
		}
		return s.respondWithOrder(ctx, http.StatusCreated, orderID.String())
	}

	return s.createOrderOnce(ctx, key, cmd)
}

// createOrderOnce runs cmd at most once per key. A repeated key replays the first order.
func (s *Server) createOrderOnce(ctx echo.Context, key string, cmd commands.CreateOrderCommand) error {
	reqCtx := ctx.Request().Context()

	existing, reserved, err := s.idempotency.Reserve(reqCtx, key)
	if err != nil {
		return err
	}
	if !reserved {
		ctx.Response().Header().Set(HeaderIdempotentReplayed, "true")
		return s.respondWithOrder(ctx, http.StatusOK, existing)
	}

	orderID, err := s.handlers.CreateOrder.Handle(reqCtx, cmd)
	if err != nil {
		if releaseErr := s.idempotency.Release(reqCtx, key); releaseErr != nil {
			s.logger.Warn("idempotency key not released", "key", key, "error", releaseErr)
		}
		return err
	}

	if err = s.idempotency.Complete(reqCtx, key, orderID.String()); err != nil {
		s.logger.Warn("idempotency key not completed", "key", key, "order_id", orderID.String(), "error", err)
	}
	return s.respondWithOrder(ctx, http.StatusCreated, orderID.String())
}

func (s *Server) GetOrder(ctx echo.Context, orderId string) error {
	return s.respondWithOrder(ctx, http.StatusOK, orderId)
}

func (s *Server) DeleteOrder(ctx echo.Context, orderId string) error {
	cmd, err := commands.NewDeleteOrderCommand(orderId)
	if err != nil {
		return err
	}

	if err = s.handlers.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) AddOrderLine(ctx echo.Context, orderId string) error {
	var body LineItem
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}

	cmd, err := commands.NewAddOrderLineCommand(orderId, body.toCommand())
	if err != nil {
		return err
	}

	if err = s.handlers.AddOrderLine.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderId)
}

func (s *Server) RemoveOrderLine(ctx echo.Context, orderId string, productId string) error {
	cmd, err := commands.NewRemoveOrderLineCommand(orderId, productId)
	if err != nil {
		return err
	}

	if err = s.handlers.RemoveOrderLine.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderId)
}

func (s *Server) ConfirmOrder(ctx echo.Context, orderId string) error {
	return s.transition(ctx, orderId, order.OperationConfirm)
}

func (s *Server) ShipOrder(ctx echo.Context, orderId string) error {
	return s.transition(ctx, orderId, order.OperationShip)
}

func (s *Server) DeliverOrder(ctx echo.Context, orderId string) error {
	return s.transition(ctx, orderId, order.OperationDeliver)
}

func (s *Server) CancelOrder(ctx echo.Context, orderId string) error {
	var body CancelRequest
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderId, deref(body.Reason))
	if err != nil {
		return err
	}

	if err = s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderId)
}

func (s *Server) GetOrderPricing(ctx echo.Context, orderId string) error {
	query, err := queries.NewGetOrderQuery(orderId)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrderPricing.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (s *Server) GetCustomerOrders(ctx echo.Context, customerId string) error {
	query, err := queries.NewGetCustomerOrdersQuery(customerId)
	if err != nil {
		return err
	}

	views, err := s.handlers.GetCustomerOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, views)
}

func (s *Server) transition(ctx echo.Context, orderID string, operation order.Operation) error {
	cmd, err := commands.NewTransitionOrderCommand(orderID, operation)
	if err != nil {
		return err
	}

	if err = s.handlers.TransitionOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

func (s *Server) respondWithOrder(ctx echo.Context, status int, orderID string) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(status, view)
}

func (i LineItem) toCommand() commands.LineItem {
	return commands.LineItem{
		ProductID:   i.ProductId,
		ProductName: i.ProductName,
		Quantity:    i.Quantity,
		UnitPrice:   i.Price.String(),
		Currency:    deref(i.Currency),
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
