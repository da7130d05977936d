package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/urbanthreads/cartservice/internal/domain/shared"
	"github.com/urbanthreads/cartservice/internal/infrastructure/config"
)

const defaultGuardKeyPrefix = "checkout:pending:"

// RedisGuard implements CheckoutGuard using Redis. Suitable for
// distributed deployments where multiple instances must agree on
// which carts have a checkout in flight.
type RedisGuard struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisGuard creates a Redis-backed checkout guard
func NewRedisGuard(cfg *config.RedisConfig) (*RedisGuard, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisGuard{
		client:    client,
		keyPrefix: defaultGuardKeyPrefix,
	}, nil
}

// NewRedisGuardWithClient creates a guard with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisGuardWithClient(client *redis.Client, keyPrefix string) *RedisGuard {
	if keyPrefix == "" {
		keyPrefix = defaultGuardKeyPrefix
	}
	return &RedisGuard{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Begin claims the key for a pending checkout using SETNX with TTL so
// the claim and its expiry are a single atomic operation.
func (g *RedisGuard) Begin(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.keyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim checkout: %w", err)
	}
	return ok, nil
}

// Release frees the key once the checkout has completed
func (g *RedisGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release checkout claim: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (g *RedisGuard) Close() error {
	return g.client.Close()
}

var _ shared.CheckoutGuard = (*RedisGuard)(nil)
