package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanthreads/cartservice/internal/domain/cart"
	"github.com/urbanthreads/cartservice/internal/domain/session"
	"github.com/urbanthreads/cartservice/internal/domain/shared"
)

// stubConsentStore answers consent lookups from a fixed map
type stubConsentStore struct {
	decisions map[string]session.ConsentDecision
	err       error
}

func (s *stubConsentStore) SetIdentity(ctx context.Context, visitorID string, identity session.Identity) error {
	return nil
}

func (s *stubConsentStore) Identity(ctx context.Context, visitorID string) (*session.Identity, error) {
	return nil, shared.ErrNotFound
}

func (s *stubConsentStore) ClearIdentity(ctx context.Context, visitorID string) error {
	return nil
}

func (s *stubConsentStore) SetConsent(ctx context.Context, visitorID string, decision session.ConsentDecision) error {
	return nil
}

func (s *stubConsentStore) Consent(ctx context.Context, visitorID string) (session.ConsentDecision, error) {
	if s.err != nil {
		return session.ConsentUnknown, s.err
	}
	if d, ok := s.decisions[visitorID]; ok {
		return d, nil
	}
	return session.ConsentUnknown, nil
}

// countingPublisher records how many events reach the wrapped publisher
type countingPublisher struct {
	published []shared.DomainEvent
}

func (p *countingPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.published = append(p.published, events...)
	return nil
}

func addEvent(t *testing.T) shared.DomainEvent {
	t.Helper()
	c := cart.NewCart()
	evt, err := c.AddItem("Classic Tee", price(t, "25.00"), "")
	require.NoError(t, err)
	return evt
}

func TestConsentGate_ForwardsWhenGranted(t *testing.T) {
	inner := &countingPublisher{}
	gate := NewConsentGate(inner, &stubConsentStore{
		decisions: map[string]session.ConsentDecision{"v1": session.ConsentGranted},
	}, nil)

	ctx := session.WithVisitorID(context.Background(), "v1")
	require.NoError(t, gate.Publish(ctx, addEvent(t)))
	assert.Len(t, inner.published, 1)
}

func TestConsentGate_DropsWhenDeclined(t *testing.T) {
	inner := &countingPublisher{}
	gate := NewConsentGate(inner, &stubConsentStore{
		decisions: map[string]session.ConsentDecision{"v1": session.ConsentDeclined},
	}, nil)

	ctx := session.WithVisitorID(context.Background(), "v1")
	require.NoError(t, gate.Publish(ctx, addEvent(t)))
	assert.Empty(t, inner.published)
}

func TestConsentGate_DropsWhenUndecided(t *testing.T) {
	inner := &countingPublisher{}
	gate := NewConsentGate(inner, &stubConsentStore{}, nil)

	ctx := session.WithVisitorID(context.Background(), "v1")
	require.NoError(t, gate.Publish(ctx, addEvent(t)))
	assert.Empty(t, inner.published)
}

func TestConsentGate_DropsWithoutVisitorSession(t *testing.T) {
	inner := &countingPublisher{}
	gate := NewConsentGate(inner, &stubConsentStore{
		decisions: map[string]session.ConsentDecision{"v1": session.ConsentGranted},
	}, nil)

	require.NoError(t, gate.Publish(context.Background(), addEvent(t)))
	assert.Empty(t, inner.published)
}

func TestConsentGate_LookupFailureNeverSurfaces(t *testing.T) {
	inner := &countingPublisher{}
	gate := NewConsentGate(inner, &stubConsentStore{err: errors.New("store down")}, nil)

	ctx := session.WithVisitorID(context.Background(), "v1")
	require.NoError(t, gate.Publish(ctx, addEvent(t)))
	assert.Empty(t, inner.published)
}
