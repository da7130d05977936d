package session

import (
	"context"
	"strings"

	"github.com/urbanthreads/cartservice/internal/domain/shared"
)

// ConsentDecision is a visitor's answer to the tracking banner
type ConsentDecision string

const (
	// ConsentUnknown means the visitor has not answered yet
	ConsentUnknown ConsentDecision = "unknown"
	// ConsentGranted means analytics may fire for this visitor
	ConsentGranted ConsentDecision = "granted"
	// ConsentDeclined means analytics must stay silent
	ConsentDeclined ConsentDecision = "declined"
)

// Identity is the logged-in shopper attached to a visitor session
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewIdentity validates and creates an Identity
func NewIdentity(name, email string) (Identity, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return Identity{}, shared.NewDomainError("INVALID_INPUT", "Name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return Identity{}, shared.NewDomainError("INVALID_INPUT", "A valid email is required")
	}
	return Identity{Name: name, Email: email}, nil
}

// Store holds visitor identity and analytics consent keyed by visitor ID
type Store interface {
	// SetIdentity records the shopper attached to a visitor session
	SetIdentity(ctx context.Context, visitorID string, identity Identity) error

	// Identity returns the shopper for a visitor session.
	// Returns shared.ErrNotFound when nobody is logged in.
	Identity(ctx context.Context, visitorID string) (*Identity, error)

	// ClearIdentity logs the shopper out of a visitor session
	ClearIdentity(ctx context.Context, visitorID string) error

	// SetConsent records the visitor's tracking decision
	SetConsent(ctx context.Context, visitorID string, decision ConsentDecision) error

	// Consent returns the visitor's tracking decision.
	// Visitors who never answered the banner report ConsentUnknown.
	Consent(ctx context.Context, visitorID string) (ConsentDecision, error)
}

type contextKey string

const visitorIDKey contextKey = "visitor_id"

// WithVisitorID attaches the visitor session ID to the context
func WithVisitorID(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, visitorIDKey, visitorID)
}

// VisitorIDFromContext extracts the visitor session ID from the context
func VisitorIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(visitorIDKey).(string)
	return id, ok && id != ""
}
