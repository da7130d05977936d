package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/urbanthreads/cartservice/internal/domain/cart"
	"github.com/urbanthreads/cartservice/internal/domain/shared"
	"github.com/urbanthreads/cartservice/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// Service handles cart mutations and reads. Every mutation follows the
// same sequence: load, mutate the aggregate, save, publish the recorded
// events. A failed save never rolls back the in-memory mutation; the
// failure is surfaced as ErrPersistenceFailure next to the completed
// result so callers can warn that the cart may not survive a reload.
type Service struct {
	repo      cart.Repository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewService creates a new cart Service
func NewService(repo cart.Repository, publisher shared.EventPublisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// AddItem adds one unit of a product to the cart
func (s *Service) AddItem(ctx context.Context, cartID uuid.UUID, req AddItemRequest) (*MutationResponse, error) {
	unitPrice, err := valueobject.NewMoneyUSDFromString(req.UnitPrice)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid unit price %q", req.UnitPrice))
	}

	c, err := s.repo.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	event, err := c.AddItem(req.Name, unitPrice, req.ImageRef)
	if err != nil {
		return nil, err
	}

	return s.finishMutation(ctx, c, ToEventResponse(event))
}

// RemoveItem removes the whole line item for the name. A name not in
// the cart is a harmless no-op: no event, unchanged cart, no error.
func (s *Service) RemoveItem(ctx context.Context, cartID uuid.UUID, name string) (*MutationResponse, error) {
	c, err := s.repo.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	event, err := c.RemoveItem(name)
	if errors.Is(err, shared.ErrNotFound) {
		return s.noOpResponse(c), nil
	}
	if err != nil {
		return nil, err
	}

	return s.finishMutation(ctx, c, ToEventResponse(event))
}

// ChangeQuantity adjusts an item's quantity by a nonzero delta. Driving
// the quantity to zero or below removes the item and reports the removal
// event. A name not in the cart is a harmless no-op.
func (s *Service) ChangeQuantity(ctx context.Context, cartID uuid.UUID, name string, delta int) (*MutationResponse, error) {
	c, err := s.repo.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	event, err := c.ChangeQuantity(name, delta)
	if errors.Is(err, shared.ErrNotFound) {
		return s.noOpResponse(c), nil
	}
	if err != nil {
		return nil, err
	}

	return s.finishMutation(ctx, c, ToEventResponse(event))
}

// GetCart returns the render view of the cart: snapshot plus item count
func (s *Service) GetCart(ctx context.Context, cartID uuid.UUID) (*CartResponse, error) {
	c, err := s.repo.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	response := ToCartResponse(c)
	return &response, nil
}

// finishMutation persists the cart, publishes its recorded events and
// builds the response. Event publication happens regardless of the save
// outcome: the in-memory mutation stands either way.
func (s *Service) finishMutation(ctx context.Context, c *cart.Cart, event *EventResponse) (*MutationResponse, error) {
	saveErr := s.repo.Save(ctx, c)
	if saveErr != nil {
		s.logger.Error("failed to persist cart",
			zap.String("cart_id", c.ID.String()),
			zap.Error(saveErr),
		)
	}

	if err := s.publisher.Publish(ctx, c.GetDomainEvents()...); err != nil {
		s.logger.Error("failed to publish cart events",
			zap.String("cart_id", c.ID.String()),
			zap.Error(err),
		)
	}
	c.ClearDomainEvents()

	response := &MutationResponse{
		Changed: true,
		Event:   event,
		Cart:    ToCartResponse(c),
	}
	if saveErr != nil {
		return response, fmt.Errorf("saving cart %s: %w", c.ID, shared.ErrPersistenceFailure)
	}
	return response, nil
}

func (s *Service) noOpResponse(c *cart.Cart) *MutationResponse {
	return &MutationResponse{
		Changed: false,
		Cart:    ToCartResponse(c),
	}
}
