package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/urbanthreads/cartservice/internal/domain/session"
	"github.com/urbanthreads/cartservice/internal/domain/shared"
	"github.com/urbanthreads/cartservice/internal/infrastructure/config"
)

const (
	identityKeyPrefix = "session:identity:"
	consentKeyPrefix  = "session:consent:"

	// sessionTTL bounds how long visitor state outlives its last write
	sessionTTL = 30 * 24 * time.Hour
)

// RedisStore implements session.Store using Redis. Suitable for
// deployments where visitor sessions must survive instance restarts.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(cfg *config.RedisConfig) (*RedisStore, error) {
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

	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient creates a store with an existing Redis client
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// SetIdentity records the shopper attached to a visitor session
func (s *RedisStore) SetIdentity(ctx context.Context, visitorID string, identity session.Identity) error {
	payload, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to encode identity: %w", err)
	}
	if err := s.client.Set(ctx, identityKeyPrefix+visitorID, payload, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store identity: %w", err)
	}
	return nil
}

// Identity returns the shopper for a visitor session
func (s *RedisStore) Identity(ctx context.Context, visitorID string) (*session.Identity, error) {
	payload, err := s.client.Get(ctx, identityKeyPrefix+visitorID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load identity: %w", err)
	}

	var identity session.Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		// Unreadable state is treated as logged out
		return nil, shared.ErrNotFound
	}
	return &identity, nil
}

// ClearIdentity logs the shopper out of a visitor session
func (s *RedisStore) ClearIdentity(ctx context.Context, visitorID string) error {
	if err := s.client.Del(ctx, identityKeyPrefix+visitorID).Err(); err != nil {
		return fmt.Errorf("failed to clear identity: %w", err)
	}
	return nil
}

// SetConsent records the visitor's tracking decision
func (s *RedisStore) SetConsent(ctx context.Context, visitorID string, decision session.ConsentDecision) error {
	if err := s.client.Set(ctx, consentKeyPrefix+visitorID, string(decision), sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store consent: %w", err)
	}
	return nil
}

// Consent returns the visitor's tracking decision
func (s *RedisStore) Consent(ctx context.Context, visitorID string) (session.ConsentDecision, error) {
	value, err := s.client.Get(ctx, consentKeyPrefix+visitorID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return session.ConsentUnknown, nil
		}
		return session.ConsentUnknown, fmt.Errorf("failed to load consent: %w", err)
	}

	switch session.ConsentDecision(value) {
	case session.ConsentGranted:
		return session.ConsentGranted, nil
	case session.ConsentDeclined:
		return session.ConsentDeclined, nil
	default:
		return session.ConsentUnknown, nil
	}
}

// Close closes the Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ session.Store = (*RedisStore)(nil)
