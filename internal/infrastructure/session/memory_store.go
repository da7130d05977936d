package session

import (
	"context"
	"sync"

	"github.com/urbanthreads/cartservice/internal/domain/session"
	"github.com/urbanthreads/cartservice/internal/domain/shared"
)

// InMemoryStore implements session.Store using maps.
// Suitable for single-instance deployments and testing.
type InMemoryStore struct {
	mu         sync.RWMutex
	identities map[string]session.Identity
	consents   map[string]session.ConsentDecision
}

// NewInMemoryStore creates an empty in-memory session store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		identities: make(map[string]session.Identity),
		consents:   make(map[string]session.ConsentDecision),
	}
}

// SetIdentity records the shopper attached to a visitor session
func (s *InMemoryStore) SetIdentity(ctx context.Context, visitorID string, identity session.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identities[visitorID] = identity
	return nil
}

// Identity returns the shopper for a visitor session
func (s *InMemoryStore) Identity(ctx context.Context, visitorID string) (*session.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identity, exists := s.identities[visitorID]
	if !exists {
		return nil, shared.ErrNotFound
	}
	return &identity, nil
}

// ClearIdentity logs the shopper out of a visitor session
func (s *InMemoryStore) ClearIdentity(ctx context.Context, visitorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.identities, visitorID)
	return nil
}

// SetConsent records the visitor's tracking decision
func (s *InMemoryStore) SetConsent(ctx context.Context, visitorID string, decision session.ConsentDecision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consents[visitorID] = decision
	return nil
}

// Consent returns the visitor's tracking decision
func (s *InMemoryStore) Consent(ctx context.Context, visitorID string) (session.ConsentDecision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	decision, exists := s.consents[visitorID]
	if !exists {
		return session.ConsentUnknown, nil
	}
	return decision, nil
}

var _ session.Store = (*InMemoryStore)(nil)
