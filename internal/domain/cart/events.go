package cart

import (
	"github.com/urbanthreads/cartservice/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCart = "Cart"

// Event type constants. These are the kinds the analytics data layer
// receives; the names match the storefront's e-commerce event schema.
const (
	EventTypeItemAdded         = "item_added"
	EventTypeItemRemoved       = "item_removed"
	EventTypeQuantityIncreased = "quantity_increased"
	EventTypeQuantityDecreased = "quantity_decreased"
	EventTypePurchaseCompleted = "purchase_completed"
)

// Fixed attributes every analytics item record carries
const (
	ItemBrand    = "Urban Threads"
	ItemCategory = "Apparel"
	ItemVariant  = "Standard"
	SiteCurrency = "USD"
)

// CartItemInfo is the analytics item payload shared by all cart events.
// Price is formatted to two decimals here, at the serialization boundary.
type CartItemInfo struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Price    string `json:"price"`
	Brand    string `json:"item_brand"`
	Category string `json:"item_category"`
	Variant  string `json:"item_variant"`
	Quantity int    `json:"quantity"`
}

// newCartItemInfo builds the analytics payload for a line item.
// The item identifier comes from the one shared derivation.
func newCartItemInfo(item *LineItem, quantity int) CartItemInfo {
	return CartItemInfo{
		ItemID:   DeriveItemID(item.Name),
		ItemName: item.Name,
		Price:    item.UnitPriceMoney().StringFixed(2),
		Brand:    ItemBrand,
		Category: ItemCategory,
		Variant:  ItemVariant,
		Quantity: quantity,
	}
}

// ItemAddedEvent is raised when a unit of a product enters the cart
type ItemAddedEvent struct {
	shared.BaseDomainEvent
	Currency      string       `json:"currency"`
	Value         string       `json:"value"`
	Item          CartItemInfo `json:"item"`
	QuantityDelta int          `json:"quantity_delta"`
}

// NewItemAddedEvent creates a new ItemAddedEvent
func NewItemAddedEvent(c *Cart, item *LineItem, delta int) *ItemAddedEvent {
	return &ItemAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemAdded, AggregateTypeCart, c.ID),
		Currency:        SiteCurrency,
		Value:           item.UnitPriceMoney().StringFixed(2),
		Item:            newCartItemInfo(item, delta),
		QuantityDelta:   delta,
	}
}

// EventType returns the event type name
func (e *ItemAddedEvent) EventType() string {
	return EventTypeItemAdded
}

// ItemRemovedEvent is raised when a whole line item leaves the cart.
// QuantityDelta is negative: the full removed quantity.
type ItemRemovedEvent struct {
	shared.BaseDomainEvent
	Currency      string       `json:"currency"`
	Value         string       `json:"value"`
	Item          CartItemInfo `json:"item"`
	QuantityDelta int          `json:"quantity_delta"`
}

// NewItemRemovedEvent creates a new ItemRemovedEvent
func NewItemRemovedEvent(c *Cart, item *LineItem, removedQuantity int) *ItemRemovedEvent {
	return &ItemRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemRemoved, AggregateTypeCart, c.ID),
		Currency:        SiteCurrency,
		Value:           item.UnitPriceMoney().StringFixed(2),
		Item:            newCartItemInfo(item, removedQuantity),
		QuantityDelta:   -removedQuantity,
	}
}

// EventType returns the event type name
func (e *ItemRemovedEvent) EventType() string {
	return EventTypeItemRemoved
}

// QuantityIncreasedEvent is raised when an existing item's quantity grows
type QuantityIncreasedEvent struct {
	shared.BaseDomainEvent
	Currency      string       `json:"currency"`
	Value         string       `json:"value"`
	Item          CartItemInfo `json:"item"`
	QuantityDelta int          `json:"quantity_delta"`
}

// NewQuantityIncreasedEvent creates a new QuantityIncreasedEvent
func NewQuantityIncreasedEvent(c *Cart, item *LineItem, delta int) *QuantityIncreasedEvent {
	return &QuantityIncreasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuantityIncreased, AggregateTypeCart, c.ID),
		Currency:        SiteCurrency,
		Value:           item.UnitPriceMoney().StringFixed(2),
		Item:            newCartItemInfo(item, delta),
		QuantityDelta:   delta,
	}
}

// EventType returns the event type name
func (e *QuantityIncreasedEvent) EventType() string {
	return EventTypeQuantityIncreased
}

// QuantityDecreasedEvent is raised when an existing item's quantity
// shrinks but stays above zero
type QuantityDecreasedEvent struct {
	shared.BaseDomainEvent
	Currency      string       `json:"currency"`
	Value         string       `json:"value"`
	Item          CartItemInfo `json:"item"`
	QuantityDelta int          `json:"quantity_delta"`
}

// NewQuantityDecreasedEvent creates a new QuantityDecreasedEvent
func NewQuantityDecreasedEvent(c *Cart, item *LineItem, decrease int) *QuantityDecreasedEvent {
	return &QuantityDecreasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuantityDecreased, AggregateTypeCart, c.ID),
		Currency:        SiteCurrency,
		Value:           item.UnitPriceMoney().StringFixed(2),
		Item:            newCartItemInfo(item, decrease),
		QuantityDelta:   decrease,
	}
}

// EventType returns the event type name
func (e *QuantityDecreasedEvent) EventType() string {
	return EventTypeQuantityDecreased
}

// PurchaseCompletedEvent is raised once per successful purchase and
// carries the full order summary for the analytics collaborator
type PurchaseCompletedEvent struct {
	shared.BaseDomainEvent
	Currency      string         `json:"currency"`
	Value         string         `json:"value"`
	Tax           string         `json:"tax"`
	Shipping      string         `json:"shipping"`
	Coupon        string         `json:"coupon"`
	TransactionID string         `json:"transaction_id"`
	Items         []CartItemInfo `json:"items"`
}

// NewPurchaseCompletedEvent creates a new PurchaseCompletedEvent from an
// order summary. Amounts are rendered to two decimals here and nowhere
// earlier.
func NewPurchaseCompletedEvent(c *Cart, summary *OrderSummary) *PurchaseCompletedEvent {
	items := make([]CartItemInfo, len(summary.Items))
	for i := range summary.Items {
		items[i] = newCartItemInfo(&summary.Items[i], summary.Items[i].Quantity)
	}

	return &PurchaseCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseCompleted, AggregateTypeCart, c.ID),
		Currency:        SiteCurrency,
		Value:           summary.Total.StringFixed(2),
		Tax:             summary.Tax.StringFixed(2),
		Shipping:        summary.Shipping.StringFixed(2),
		Coupon:          summary.CouponCode,
		TransactionID:   summary.TransactionID,
		Items:           items,
	}
}

// EventType returns the event type name
func (e *PurchaseCompletedEvent) EventType() string {
	return EventTypePurchaseCompleted
}
