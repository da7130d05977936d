package analytics

import (
	"context"

	"go.uber.org/zap"

	"github.com/urbanthreads/cartservice/internal/domain/session"
	"github.com/urbanthreads/cartservice/internal/domain/shared"
)

// ConsentGate wraps an event publisher and drops events for visitors
// who have not granted tracking consent. The cart mutation itself is
// never affected; only the analytics emission is suppressed.
type ConsentGate struct {
	inner  shared.EventPublisher
	store  session.Store
	logger *zap.Logger
}

// NewConsentGate creates a consent-checking publisher around inner
func NewConsentGate(inner shared.EventPublisher, store session.Store, logger *zap.Logger) *ConsentGate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsentGate{inner: inner, store: store, logger: logger}
}

// Publish forwards events only when the visitor in the context has
// granted consent. Requests without a visitor session, undecided
// visitors, and consent lookup failures all result in a silent drop.
func (g *ConsentGate) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	visitorID, ok := session.VisitorIDFromContext(ctx)
	if !ok {
		g.logger.Debug("dropping events without visitor session",
			zap.Int("count", len(events)),
		)
		return nil
	}

	decision, err := g.store.Consent(ctx, visitorID)
	if err != nil {
		g.logger.Warn("consent lookup failed, dropping events",
			zap.String("visitor_id", visitorID),
			zap.Error(err),
		)
		return nil
	}
	if decision != session.ConsentGranted {
		g.logger.Debug("dropping events without consent",
			zap.String("visitor_id", visitorID),
			zap.String("decision", string(decision)),
		)
		return nil
	}

	return g.inner.Publish(ctx, events...)
}

var _ shared.EventPublisher = (*ConsentGate)(nil)
