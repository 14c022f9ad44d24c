package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"orders/internal/adapters/out/kafka"
	"orders/internal/adapters/out/redis"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/services"
	"orders/internal/jobs"
	"orders/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const defaultHTTPPort = "8080"

type Config struct {
	HTTPPort string

	// DBHost empty keeps orders in process memory.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// KafkaBrokers empty sends events to the log instead.
	KafkaBrokers          []string
	KafkaOrderEventsTopic string

	OutboxBatchSize   int
	OutboxDestination string
	OutboxSchedule    string

	// RedisAddr empty disables Idempotency-Key handling.
	RedisAddr      string
	IdempotencyTTL time.Duration

	Pricing services.PricingPolicy
}

// LoadDotEnv loads .env from the working directory when it exists.
func LoadDotEnv() error {
	err := godotenv.Load(".env")
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// LoadConfig reads the configuration through getenv, usually os.Getenv. Every invalid value
// is reported, not just the first.
func LoadConfig(getenv func(string) string) (Config, error) {
	p := envParser{getenv: getenv}
	defaults := services.DefaultPricingPolicy()

	config := Config{
		HTTPPort:              p.str("HTTP_PORT", defaultHTTPPort),
		DBHost:                p.str("DB_HOST", ""),
		DBPort:                p.str("DB_PORT", "5432"),
		DBUser:                p.str("DB_USER", ""),
		DBPassword:            p.str("DB_PASSWORD", ""),
		DBName:                p.str("DB_NAME", ""),
		DBSslMode:             p.str("DB_SSLMODE", "disable"),
		KafkaBrokers:          kafka.ParseBrokers(getenv("KAFKA_BROKERS")),
		KafkaOrderEventsTopic: p.str("KAFKA_ORDER_EVENTS_TOPIC", kafka.DefaultTopic),
		OutboxBatchSize:       p.integer("OUTBOX_BATCH_SIZE", commands.DefaultOutboxBatchSize),
		OutboxDestination:     p.str("OUTBOX_DESTINATION", ""),
		OutboxSchedule:        p.str("OUTBOX_SCHEDULE", jobs.DefaultOutboxSchedule),
		RedisAddr:             p.str("REDIS_ADDR", ""),
		IdempotencyTTL:        p.duration("IDEMPOTENCY_TTL", redis.DefaultTTL),
		Pricing: services.PricingPolicy{
			DiscountThreshold:     p.decimal("PRICING_DISCOUNT_THRESHOLD", defaults.DiscountThreshold),
			DiscountRate:          p.decimal("PRICING_DISCOUNT_RATE", defaults.DiscountRate),
			TaxRate:               p.decimal("PRICING_TAX_RATE", defaults.TaxRate),
			MinimumOrder:          p.decimal("PRICING_MINIMUM_ORDER", defaults.MinimumOrder),
			FreeShippingThreshold: p.decimal("PRICING_FREE_SHIPPING_THRESHOLD", defaults.FreeShippingThreshold),
			ShippingFee:           p.decimal("PRICING_SHIPPING_FEE", defaults.ShippingFee),
		},
	}

	if err := errors.Join(append(p.errs, config.Pricing.Validate())...); err != nil {
		return Config{}, err
	}
	return config, nil
}

// RequireDatabase fails when DB_HOST is unset.
func (c Config) RequireDatabase() error {
	if c.DBHost == "" {
		return errs.NewValueIsRequiredError("DB_HOST")
	}
	return nil
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// envParser collects parse failures so LoadConfig can report them together.
type envParser struct {
	getenv func(string) string
	errs   []error
}

func (p *envParser) str(key, fallback string) string {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (p *envParser) integer(key string, fallback int) int {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func (p *envParser) duration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}

func (p *envParser) decimal(key string, fallback decimal.Decimal) decimal.Decimal {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return fallback
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}
