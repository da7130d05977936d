package shared

import (
	"context"
	"time"
)

// CheckoutGuard prevents double submission of a purchase. A finalize
// attempt begins by claiming the cart's key; a second attempt while the
// claim is held must be rejected. The TTL bounds how long a crashed
// checkout can keep a cart locked.
type CheckoutGuard interface {
	// Begin claims the key for a pending checkout.
	// Returns true if the claim was newly taken, false if one is already held.
	Begin(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees the key once the checkout's clear step has completed
	Release(ctx context.Context, key string) error

	// Close closes the guard and releases resources
	Close() error
}

// CheckoutGuardConfig holds configuration for the double-submission guard
type CheckoutGuardConfig struct {
	// TTL is how long a pending claim is held before it self-expires
	// Default: 30 seconds
	TTL time.Duration
}

// DefaultCheckoutGuardConfig returns the default guard configuration
func DefaultCheckoutGuardConfig() CheckoutGuardConfig {
	return CheckoutGuardConfig{
		TTL: 30 * time.Second,
	}
}
