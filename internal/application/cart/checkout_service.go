package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/urbanthreads/cartservice/internal/domain/cart"
	"github.com/urbanthreads/cartservice/internal/domain/shared"
	"go.uber.org/zap"
)

// CheckoutService finalizes purchases: compute the order summary,
// publish the purchase event, clear the cart, persist the empty
// state, in that order. A guard claim is held
// for the whole sequence so a second finalize for the same cart while
// one is pending is rejected rather than double-submitted.
type CheckoutService struct {
	repo      cart.Repository
	publisher shared.EventPublisher
	guard     shared.CheckoutGuard
	pricing   cart.PricingConfig
	guardTTL  time.Duration
	logger    *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	repo cart.Repository,
	publisher shared.EventPublisher,
	guard shared.CheckoutGuard,
	pricing cart.PricingConfig,
	guardCfg shared.CheckoutGuardConfig,
	logger *zap.Logger,
) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		repo:      repo,
		publisher: publisher,
		guard:     guard,
		pricing:   pricing,
		guardTTL:  guardCfg.TTL,
		logger:    logger,
	}
}

// FinalizePurchase computes the totals, emits purchase_completed and
// clears the cart. Navigation afterwards belongs to the storefront.
func (s *CheckoutService) FinalizePurchase(ctx context.Context, cartID uuid.UUID) (*PurchaseResponse, error) {
	claimed, err := s.guard.Begin(ctx, cartID.String(), s.guardTTL)
	if err != nil {
		return nil, fmt.Errorf("claiming checkout for cart %s: %w", cartID, err)
	}
	if !claimed {
		return nil, shared.ErrCheckoutInProgress
	}
	defer func() {
		if err := s.guard.Release(ctx, cartID.String()); err != nil {
			s.logger.Warn("failed to release checkout claim",
				zap.String("cart_id", cartID.String()),
				zap.Error(err),
			)
		}
	}()

	c, err := s.repo.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	summary, err := cart.FinalizePurchase(c, s.pricing)
	if err != nil {
		return nil, err
	}

	event := cart.NewPurchaseCompletedEvent(c, summary)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish purchase event",
			zap.String("cart_id", cartID.String()),
			zap.String("transaction_id", summary.TransactionID),
			zap.Error(err),
		)
	}

	s.logger.Info("purchase completed",
		zap.String("cart_id", cartID.String()),
		zap.String("transaction_id", summary.TransactionID),
		zap.String("total", summary.Total.StringFixed(2)),
	)

	c.Clear()
	response := ToPurchaseResponse(summary)
	if err := s.repo.Save(ctx, c); err != nil {
		s.logger.Error("failed to persist cleared cart",
			zap.String("cart_id", cartID.String()),
			zap.Error(err),
		)
		return &response, fmt.Errorf("saving cleared cart %s: %w", cartID, shared.ErrPersistenceFailure)
	}

	return &response, nil
}

// Pricing returns the service's active pricing rules
func (s *CheckoutService) Pricing() cart.PricingConfig {
	return s.pricing
}
