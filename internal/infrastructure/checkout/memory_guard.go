package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/urbanthreads/cartservice/internal/domain/shared"
)

// claim represents a held checkout with expiration
type claim struct {
	expiresAt time.Time
}

// InMemoryGuard implements CheckoutGuard using an in-memory map.
// Suitable for single-instance deployments and testing.
type InMemoryGuard struct {
	mu        sync.Mutex
	claims    map[string]claim
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryGuard creates a new in-memory checkout guard.
// It starts a background goroutine to clean up expired claims.
func NewInMemoryGuard() *InMemoryGuard {
	g := &InMemoryGuard{
		claims:   make(map[string]claim),
		stopChan: make(chan struct{}),
	}

	g.wg.Add(1)
	go g.cleanupLoop()

	return g
}

// Begin claims the key for a pending checkout.
// Returns true if the claim was newly taken, false if one is already held.
func (g *InMemoryGuard) Begin(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, exists := g.claims[key]; exists {
		if time.Now().Before(c.expiresAt) {
			return false, nil
		}
		// Expired claim, will be overwritten
	}

	g.claims[key] = claim{expiresAt: time.Now().Add(ttl)}
	return true, nil
}

// Release frees the key so the next checkout can proceed
func (g *InMemoryGuard) Release(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.claims, key)
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (g *InMemoryGuard) Close() error {
	g.closeOnce.Do(func() {
		close(g.stopChan)
		g.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired claims
func (g *InMemoryGuard) cleanupLoop() {
	defer g.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-g.stopChan:
			return
		case <-ticker.C:
			g.cleanup()
		}
	}
}

func (g *InMemoryGuard) cleanup() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	for key, c := range g.claims {
		if now.After(c.expiresAt) {
			delete(g.claims, key)
		}
	}
}

// Size returns the number of held claims (for testing/monitoring)
func (g *InMemoryGuard) Size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.claims)
}

var _ shared.CheckoutGuard = (*InMemoryGuard)(nil)
