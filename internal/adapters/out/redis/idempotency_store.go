// Package redis keeps idempotency keys for order creation in Redis.
//
// A key moves through two states: reserved (value is a pending marker) while the request runs,
// then completed (value is the created order id). Both expire after the configured TTL.
package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	goredis "github.com/redis/go-redis/v9"
)

const (
	DefaultTTL = 24 * time.Hour

	keyPrefix     = "orders:idempotency:"
	pendingMarker = "\x00pending"
)

// IdempotencyStore implements ports.IdempotencyStore on a Redis client.
type IdempotencyStore struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

// NewIdempotencyStore uses DefaultTTL when ttl is not positive.
func NewIdempotencyStore(client goredis.UniversalClient, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (string, bool, error) {
	redisKey, err := s.redisKey(key)
	if err != nil {
		return "", false, err
	}

	reserved, err := s.client.SetNX(ctx, redisKey, pendingMarker, s.ttl).Result()
	if err != nil {
		return "", false, err
	}
	if reserved {
		return "", true, nil
	}

	value, err := s.client.Get(ctx, redisKey).Result()
	if errors.Is(err, goredis.Nil) {
		// expired between SETNX and GET
		return s.Reserve(ctx, key)
	}
	if err != nil {
		return "", false, err
	}
	if value == pendingMarker {
		return "", false, ports.ErrIdempotencyKeyInProgress
	}
	return value, false, nil
}

// Complete stores result and restarts the TTL.
func (s *IdempotencyStore) Complete(ctx context.Context, key, result string) error {
	redisKey, err := s.redisKey(key)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKey, result, s.ttl).Err()
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	redisKey, err := s.redisKey(key)
	if err != nil {
		return err
	}
	return s.client.Del(ctx, redisKey).Err()
}

func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	redisKey, err := s.redisKey(key)
	if err != nil {
		return "", false, err
	}

	value, err := s.client.Get(ctx, redisKey).Result()
	if errors.Is(err, goredis.Nil) || value == pendingMarker {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *IdempotencyStore) redisKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errs.NewValueIsRequiredError("idempotencyKey")
	}
	return keyPrefix + key, nil
}
