package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"orders/internal/adapters/in/cli"
	orderhttp "orders/internal/adapters/in/http"
	"orders/internal/adapters/out/eventlog"
	"orders/internal/adapters/out/kafka"
	"orders/internal/adapters/out/memory"
	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/redis"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
	"orders/internal/jobs"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type CompositionRoot struct {
	config      Config
	logger      *slog.Logger
	uowFactory  ports.UnitOfWorkFactory
	orders      ports.OrderRepository
	publisher   ports.EventPublisher
	idempotency ports.IdempotencyStore
	pricing     services.PricingService
	closers     []func() error
}

// OpenDatabase connects to postgres and migrates the schema. It returns nil, nil when no
// DB_HOST is configured.
func OpenDatabase(config Config) (*gorm.DB, error) {
	if config.DBHost == "" {
		return nil, nil
	}

	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err = postgres.Migrate(gormDB); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return gormDB, nil
}

// NewCompositionRoot wires the adapters selected by config. A nil gormDB selects the in-memory
// store.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	pricing, err := services.NewPricingService(config.Pricing)
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		config:  config,
		logger:  logger,
		pricing: pricing,
	}

	if gormDB != nil {
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
		root.orders = orderrepo.NewGormOrderRepository(gormDB)
	} else {
		logger.Warn("DB_HOST is not set, orders are kept in memory for this process only")
		store := memory.NewStore()
		root.uowFactory = memory.NewUnitOfWorkFactory(store)
		root.orders = memory.NewOrderRepository(store)
	}

	if len(config.KafkaBrokers) > 0 {
		writer, err := kafka.NewWriter(config.KafkaBrokers)
		if err != nil {
			return nil, err
		}
		publisher := kafka.NewPublisher(writer, config.KafkaOrderEventsTopic, logger)
		root.publisher = publisher
		root.closers = append(root.closers, publisher.Close)
	} else {
		logger.Info("KAFKA_BROKERS is not set, events are written to the log")
		root.publisher = eventlog.NewPublisher(logger)
	}

	if config.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: config.RedisAddr})
		root.idempotency = redis.NewIdempotencyStore(client, config.IdempotencyTTL)
		root.closers = append(root.closers, client.Close)
	}

	return root, nil
}

// Close releases broker and cache connections.
func (c *CompositionRoot) Close() error {
	var errs []error
	for _, closeFn := range c.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddOrderLineCommandHandler() commands.AddOrderLineCommandHandler {
	return commands.NewAddOrderLineCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRemoveOrderLineCommandHandler() commands.RemoveOrderLineCommandHandler {
	return commands.NewRemoveOrderLineCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreatePublishOutboxEventsCommandHandler() commands.PublishOutboxEventsCommandHandler {
	return commands.NewPublishOutboxEventsCommandHandler(c.outboxUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateSearchOrdersQueryHandler() queries.SearchOrdersQueryHandler {
	return queries.NewSearchOrdersQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateGetOrderPricingQueryHandler() queries.GetOrderPricingQueryHandler {
	return queries.NewGetOrderPricingQueryHandler(c.orders, c.pricing)
}

// NewEcho builds the HTTP API.
func (c *CompositionRoot) NewEcho() (*echo.Echo, error) {
	server := orderhttp.NewServer(orderhttp.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		AddOrderLine:      c.CreateAddOrderLineCommandHandler(),
		RemoveOrderLine:   c.CreateRemoveOrderLineCommandHandler(),
		TransitionOrder:   c.CreateTransitionOrderCommandHandler(),
		CancelOrder:       c.CreateCancelOrderCommandHandler(),
		DeleteOrder:       c.CreateDeleteOrderCommandHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		GetCustomerOrders: c.CreateGetCustomerOrdersQueryHandler(),
		SearchOrders:      c.CreateSearchOrdersQueryHandler(),
		GetOrderPricing:   c.CreateGetOrderPricingQueryHandler(),
	}, c.idempotency, c.logger)

	return orderhttp.NewEcho(server, c.logger)
}

// NewJobManager builds the background jobs.
func (c *CompositionRoot) NewJobManager() (*jobs.JobManager, error) {
	return jobs.NewJobManager(c.CreatePublishOutboxEventsCommandHandler(), jobs.OutboxRelayConfig{
		Schedule:    c.config.OutboxSchedule,
		BatchSize:   c.config.OutboxBatchSize,
		Destination: c.config.OutboxDestination,
	}, c.logger)
}

// CLIHandlers returns the use cases for the operator CLI.
func (c *CompositionRoot) CLIHandlers() cli.Handlers {
	return cli.Handlers{
		CreateOrder:     c.CreateCreateOrderCommandHandler(),
		TransitionOrder: c.CreateTransitionOrderCommandHandler(),
		CancelOrder:     c.CreateCancelOrderCommandHandler(),
		PublishEvents:   c.CreatePublishOutboxEventsCommandHandler(),
		GetOrder:        c.CreateGetOrderQueryHandler(),
		SearchOrders:    c.CreateSearchOrdersQueryHandler(),
		GetOrderPricing: c.CreateGetOrderPricingQueryHandler(),
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
