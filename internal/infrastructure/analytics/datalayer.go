package analytics

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/urbanthreads/cartservice/internal/domain/cart"
	"github.com/urbanthreads/cartservice/internal/domain/shared"
)

// Marketing event names pushed to the data layer. These are the
// ecommerce event names the tag manager expects.
const (
	PushEventAddToCart      = "add_to_cart"
	PushEventRemoveFromCart = "remove_from_cart"
	PushEventPurchase       = "purchase"
)

// Entry is a single data layer push. Ecommerce carries the monetary
// payload; purchase pushes additionally fill Tax, Shipping, Coupon and
// TransactionID.
type Entry struct {
	Event         string              `json:"event"`
	Currency      string              `json:"currency"`
	Value         string              `json:"value"`
	Tax           string              `json:"tax,omitempty"`
	Shipping      string              `json:"shipping,omitempty"`
	Coupon        string              `json:"coupon,omitempty"`
	TransactionID string              `json:"transaction_id,omitempty"`
	Items         []cart.CartItemInfo `json:"items"`
	PushedAt      time.Time           `json:"pushed_at"`
}

// DataLayer is an append-only sink for marketing events. It subscribes
// to cart domain events and translates them into the entries a tag
// manager data layer would receive.
type DataLayer struct {
	mu      sync.RWMutex
	entries []Entry
	logger  *zap.Logger
}

// NewDataLayer creates an empty data layer sink
func NewDataLayer(logger *zap.Logger) *DataLayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DataLayer{logger: logger}
}

// EventTypes implements shared.EventHandler
func (d *DataLayer) EventTypes() []string {
	return []string{
		cart.EventTypeItemAdded,
		cart.EventTypeItemRemoved,
		cart.EventTypeQuantityIncreased,
		cart.EventTypeQuantityDecreased,
		cart.EventTypePurchaseCompleted,
	}
}

// Handle implements shared.EventHandler. Unknown event types are
// ignored so new domain events never break the sink.
func (d *DataLayer) Handle(ctx context.Context, event shared.DomainEvent) error {
	var entry Entry
	switch e := event.(type) {
	case *cart.ItemAddedEvent:
		entry = itemEntry(PushEventAddToCart, e.Currency, e.Value, e.Item)
	case *cart.QuantityIncreasedEvent:
		entry = itemEntry(PushEventAddToCart, e.Currency, e.Value, e.Item)
	case *cart.ItemRemovedEvent:
		entry = itemEntry(PushEventRemoveFromCart, e.Currency, e.Value, e.Item)
	case *cart.QuantityDecreasedEvent:
		entry = itemEntry(PushEventRemoveFromCart, e.Currency, e.Value, e.Item)
	case *cart.PurchaseCompletedEvent:
		entry = Entry{
			Event:         PushEventPurchase,
			Currency:      e.Currency,
			Value:         e.Value,
			Tax:           e.Tax,
			Shipping:      e.Shipping,
			Coupon:        e.Coupon,
			TransactionID: e.TransactionID,
			Items:         e.Items,
			PushedAt:      time.Now(),
		}
	default:
		return nil
	}

	d.mu.Lock()
	d.entries = append(d.entries, entry)
	d.mu.Unlock()

	d.logger.Debug("data layer push",
		zap.String("event", entry.Event),
		zap.String("value", entry.Value),
	)
	return nil
}

func itemEntry(name, currency, value string, item cart.CartItemInfo) Entry {
	return Entry{
		Event:    name,
		Currency: currency,
		Value:    value,
		Items:    []cart.CartItemInfo{item},
		PushedAt: time.Now(),
	}
}

// Entries returns a snapshot of all pushed entries in order
func (d *DataLayer) Entries() []Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Len returns the number of pushed entries
func (d *DataLayer) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// Reset clears all entries
func (d *DataLayer) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = nil
}

var _ shared.EventHandler = (*DataLayer)(nil)
