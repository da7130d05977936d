package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/urbanthreads/cartservice/internal/domain/session"
)

// LoginRequest carries the shopper identity to attach to a visitor session
type LoginRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// UserResponse is the shopper attached to a visitor session
type UserResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ConsentRequest carries a visitor's tracking decision
type ConsentRequest struct {
	Granted bool `json:"granted"`
}

// ConsentResponse reports a visitor's tracking decision
type ConsentResponse struct {
	Decision string `json:"decision"`
}

// Service coordinates visitor identity and tracking consent
type Service struct {
	store  session.Store
	logger *zap.Logger
}

// NewService creates a session service
func NewService(store session.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Login attaches a shopper identity to the visitor session
func (s *Service) Login(ctx context.Context, visitorID string, req LoginRequest) (*UserResponse, error) {
	identity, err := session.NewIdentity(req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetIdentity(ctx, visitorID, identity); err != nil {
		return nil, err
	}

	s.logger.Info("shopper logged in",
		zap.String("visitor_id", visitorID),
	)
	return &UserResponse{Name: identity.Name, Email: identity.Email}, nil
}

// Logout detaches the shopper identity from the visitor session
func (s *Service) Logout(ctx context.Context, visitorID string) error {
	if err := s.store.ClearIdentity(ctx, visitorID); err != nil {
		return err
	}
	s.logger.Info("shopper logged out",
		zap.String("visitor_id", visitorID),
	)
	return nil
}

// CurrentUser returns the shopper attached to the visitor session.
// Returns shared.ErrNotFound when nobody is logged in.
func (s *Service) CurrentUser(ctx context.Context, visitorID string) (*UserResponse, error) {
	identity, err := s.store.Identity(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	return &UserResponse{Name: identity.Name, Email: identity.Email}, nil
}

// SetConsent records the visitor's tracking decision
func (s *Service) SetConsent(ctx context.Context, visitorID string, granted bool) (*ConsentResponse, error) {
	decision := session.ConsentDeclined
	if granted {
		decision = session.ConsentGranted
	}
	if err := s.store.SetConsent(ctx, visitorID, decision); err != nil {
		return nil, err
	}
	return &ConsentResponse{Decision: string(decision)}, nil
}

// GetConsent returns the visitor's tracking decision
func (s *Service) GetConsent(ctx context.Context, visitorID string) (*ConsentResponse, error) {
	decision, err := s.store.Consent(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	return &ConsentResponse{Decision: string(decision)}, nil
}
