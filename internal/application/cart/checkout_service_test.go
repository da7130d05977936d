package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urbanthreads/cartservice/internal/domain/cart"
	"github.com/urbanthreads/cartservice/internal/domain/shared"
	"go.uber.org/zap"
)

func newTestCheckoutService(repo *MockRepository, publisher *MockPublisher, guard *MockGuard) *CheckoutService {
	return NewCheckoutService(
		repo,
		publisher,
		guard,
		cart.DefaultPricingConfig(),
		shared.DefaultCheckoutGuardConfig(),
		zap.NewNop(),
	)
}

func TestCheckoutService_FinalizePurchase(t *testing.T) {
	repo := new(MockRepository)
	publisher := new(MockPublisher)
	guard := new(MockGuard)
	svc := newTestCheckoutService(repo, publisher, guard)

	c := storedCart(t, "Tee") // one item at 20.00
	guard.On("Begin", mock.Anything, c.ID.String(), mock.Anything).Return(true, nil)
	guard.On("Release", mock.Anything, c.ID.String()).Return(nil)
	repo.On("Load", mock.Anything, c.ID).Return(c, nil)
	repo.On("Save", mock.Anything, c).Return(nil)

	var published []shared.DomainEvent
	publisher.On("Publish", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		published = append(published, args.Get(1).([]shared.DomainEvent)...)
	}).Return(nil)

	resp, err := svc.FinalizePurchase(context.Background(), c.ID)
	require.NoError(t, err)

	// 20.00 -> discount 2.00 -> 18.00 -> tax 1.26 -> +3.00 = 22.26
	assert.Equal(t, "20.00", resp.ItemsSubtotal)
	assert.Equal(t, "2.00", resp.Discount)
	assert.Equal(t, "18.00", resp.DiscountedSubtotal)
	assert.Equal(t, "1.26", resp.Tax)
	assert.Equal(t, "3.00", resp.Shipping)
	assert.Equal(t, "22.26", resp.Total)
	assert.Equal(t, "SUMMER20", resp.Coupon)
	assert.NotEmpty(t, resp.TransactionID)

	// Purchase event published, cart cleared and persisted.
	require.Len(t, published, 1)
	assert.Equal(t, cart.EventTypePurchaseCompleted, published[0].EventType())
	assert.True(t, c.IsEmpty())
	guard.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestCheckoutService_RejectsWhilePending(t *testing.T) {
	repo := new(MockRepository)
	publisher := new(MockPublisher)
	guard := new(MockGuard)
	svc := newTestCheckoutService(repo, publisher, guard)

	c := storedCart(t, "Tee")
	guard.On("Begin", mock.Anything, c.ID.String(), mock.Anything).Return(false, nil)

	_, err := svc.FinalizePurchase(context.Background(), c.ID)

	assert.ErrorIs(t, err, shared.ErrCheckoutInProgress)
	repo.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	guard.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestCheckoutService_SecondFinalizeAfterClearHasNoItems(t *testing.T) {
	repo := new(MockRepository)
	publisher := new(MockPublisher)
	guard := new(MockGuard)
	svc := newTestCheckoutService(repo, publisher, guard)

	c := storedCart(t, "Tee")
	guard.On("Begin", mock.Anything, c.ID.String(), mock.Anything).Return(true, nil)
	guard.On("Release", mock.Anything, c.ID.String()).Return(nil)
	repo.On("Load", mock.Anything, c.ID).Return(c, nil)
	repo.On("Save", mock.Anything, c).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.FinalizePurchase(context.Background(), c.ID)
	require.NoError(t, err)

	// Same cart, now cleared: a back-to-back finalize must not produce a
	// second purchase event.
	_, err = svc.FinalizePurchase(context.Background(), c.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_ITEMS", domainErr.Code)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestCheckoutService_EmptyCart(t *testing.T) {
	repo := new(MockRepository)
	publisher := new(MockPublisher)
	guard := new(MockGuard)
	svc := newTestCheckoutService(repo, publisher, guard)

	c := storedCart(t)
	guard.On("Begin", mock.Anything, c.ID.String(), mock.Anything).Return(true, nil)
	guard.On("Release", mock.Anything, c.ID.String()).Return(nil)
	repo.On("Load", mock.Anything, c.ID).Return(c, nil)

	_, err := svc.FinalizePurchase(context.Background(), c.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_ITEMS", domainErr.Code)
	guard.AssertCalled(t, "Release", mock.Anything, c.ID.String())
}

func TestCheckoutService_PersistenceFailureStillReturnsSummary(t *testing.T) {
	repo := new(MockRepository)
	publisher := new(MockPublisher)
	guard := new(MockGuard)
	svc := newTestCheckoutService(repo, publisher, guard)

	c := storedCart(t, "Tee")
	guard.On("Begin", mock.Anything, c.ID.String(), mock.Anything).Return(true, nil)
	guard.On("Release", mock.Anything, c.ID.String()).Return(nil)
	repo.On("Load", mock.Anything, c.ID).Return(c, nil)
	repo.On("Save", mock.Anything, c).Return(errors.New("connection reset"))
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.FinalizePurchase(context.Background(), c.ID)

	require.NotNil(t, resp)
	assert.Equal(t, "22.26", resp.Total)
	assert.ErrorIs(t, err, shared.ErrPersistenceFailure)
	assert.True(t, c.IsEmpty(), "in-memory clear is not rolled back")
}

func TestCheckoutService_GuardError(t *testing.T) {
	repo := new(MockRepository)
	publisher := new(MockPublisher)
	guard := new(MockGuard)
	svc := newTestCheckoutService(repo, publisher, guard)

	c := storedCart(t, "Tee")
	guard.On("Begin", mock.Anything, c.ID.String(), mock.Anything).Return(false, errors.New("redis down"))

	_, err := svc.FinalizePurchase(context.Background(), c.ID)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, shared.ErrCheckoutInProgress)
}
