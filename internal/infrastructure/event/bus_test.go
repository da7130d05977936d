package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/urbanthreads/cartservice/internal/domain/cart"
	"github.com/urbanthreads/cartservice/internal/domain/shared"
	"github.com/urbanthreads/cartservice/internal/domain/shared/valueobject"
)

// recordingHandler captures events it receives
type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	err      error
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.received = append(h.received, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

type panickingHandler struct{}

func (h *panickingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	panic("handler bug")
}

func (h *panickingHandler) EventTypes() []string { return nil }

func emitAddEvent(t *testing.T) shared.DomainEvent {
	t.Helper()
	c := cart.NewCart()
	price, err := valueobject.NewMoneyUSDFromString("25.00")
	require.NoError(t, err)
	evt, err := c.AddItem("Classic Tee", price, "")
	require.NoError(t, err)
	return evt
}

func TestInMemoryEventBus_DeliversToSubscribedHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{cart.EventTypeItemAdded}}
	bus.Subscribe(handler)

	evt := emitAddEvent(t)
	require.NoError(t, bus.Publish(context.Background(), evt))

	require.Len(t, handler.received, 1)
	assert.Equal(t, cart.EventTypeItemAdded, handler.received[0].EventType())
}

func TestInMemoryEventBus_WildcardHandlerReceivesAllEvents(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{}
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), emitAddEvent(t)))
	require.Len(t, handler.received, 1)
}

func TestInMemoryEventBus_SkipsUnrelatedHandlers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{cart.EventTypeItemRemoved}}
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), emitAddEvent(t)))
	assert.Empty(t, handler.received)
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopDispatch(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{err: errors.New("sink unavailable")}
	healthy := &recordingHandler{}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), emitAddEvent(t)))
	assert.Len(t, failing.received, 1)
	assert.Len(t, healthy.received, 1)
}

func TestInMemoryEventBus_RecoversFromHandlerPanic(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(&panickingHandler{})
	after := &recordingHandler{}
	bus.Subscribe(after)

	require.NoError(t, bus.Publish(context.Background(), emitAddEvent(t)))
	assert.Len(t, after.received, 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), emitAddEvent(t)))
	assert.Empty(t, handler.received)
}
