package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/urbanthreads/cartservice/internal/domain/shared"
	"github.com/urbanthreads/cartservice/internal/domain/shared/valueobject"
)

// LineItem represents one distinct product entry in the cart.
// The display name is the cart's key (case-sensitive exact match);
// quantity is always >= 1 while the item is present.
type LineItem struct {
	Name      string
	UnitPrice decimal.Decimal
	ImageRef  string
	Quantity  int
	AddedAt   time.Time
}

// UnitPriceMoney returns the unit price as Money value object
func (i *LineItem) UnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.UnitPrice)
}

// LineTotal returns unit price multiplied by quantity
func (i *LineItem) LineTotal() valueobject.Money {
	return valueobject.NewMoneyUSD(i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))))
}

// Cart is the aggregate root for a shopper's cart. It holds an
// insertion-ordered sequence of line items with at most one item per
// distinct name, and records a domain event for every mutation.
type Cart struct {
	shared.BaseAggregateRoot
	Items []LineItem
}

// NewCart creates a new empty cart
func NewCart() *Cart {
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Items:             make([]LineItem, 0),
	}
}

// NewCartWithID creates a new empty cart with a known identity.
// Used when the storefront supplies the cart id and nothing is stored yet.
func NewCartWithID(id uuid.UUID) *Cart {
	c := NewCart()
	c.ID = id
	return c
}

// RestoreCart rebuilds a cart from persisted state without emitting events
func RestoreCart(id uuid.UUID, version int, createdAt, updatedAt time.Time, items []LineItem) *Cart {
	c := &Cart{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        id,
				CreatedAt: createdAt,
				UpdatedAt: updatedAt,
			},
			Version: version,
		},
		Items: make([]LineItem, len(items)),
	}
	copy(c.Items, items)
	return c
}

// AddItem adds one unit of the named product. If an item with the same
// name already exists its quantity is incremented by 1, otherwise a new
// line item is appended. Always emits an item_added event with delta 1.
func (c *Cart) AddItem(name string, unitPrice valueobject.Money, imageRef string) (*ItemAddedEvent, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item name cannot be empty")
	}
	if !unitPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price must be positive")
	}

	idx := c.findItem(name)
	if idx >= 0 {
		c.Items[idx].Quantity++
	} else {
		c.Items = append(c.Items, LineItem{
			Name:      name,
			UnitPrice: unitPrice.Amount(),
			ImageRef:  imageRef,
			Quantity:  1,
			AddedAt:   time.Now(),
		})
		idx = len(c.Items) - 1
	}
	c.UpdatedAt = time.Now()

	event := NewItemAddedEvent(c, &c.Items[idx], 1)
	c.AddDomainEvent(event)
	return event, nil
}

// RemoveItem removes the entire line item regardless of quantity and
// emits item_removed with delta = -(removed quantity). Returns
// ErrNotFound when no item matches; callers treat that as a no-op.
func (c *Cart) RemoveItem(name string) (*ItemRemovedEvent, error) {
	idx := c.findItem(name)
	if idx < 0 {
		return nil, shared.ErrNotFound
	}

	removed := c.Items[idx]
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	c.UpdatedAt = time.Now()

	event := NewItemRemovedEvent(c, &removed, removed.Quantity)
	c.AddDomainEvent(event)
	return event, nil
}

// ChangeQuantity adjusts the named item's quantity by delta. Driving the
// quantity to zero or below removes the whole line and emits the removal
// event, not a quantity-decrease event; callers must not assume
// quantity-change events preserve the item.
func (c *Cart) ChangeQuantity(name string, delta int) (shared.DomainEvent, error) {
	if delta == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity delta cannot be zero")
	}

	idx := c.findItem(name)
	if idx < 0 {
		return nil, shared.ErrNotFound
	}

	newQuantity := c.Items[idx].Quantity + delta
	if newQuantity <= 0 {
		return c.RemoveItem(name)
	}

	c.Items[idx].Quantity = newQuantity
	c.UpdatedAt = time.Now()

	var event shared.DomainEvent
	if delta > 0 {
		event = NewQuantityIncreasedEvent(c, &c.Items[idx], delta)
	} else {
		event = NewQuantityDecreasedEvent(c, &c.Items[idx], -delta)
	}
	c.AddDomainEvent(event)
	return event, nil
}

// ItemCount returns the sum of all quantities (the count indicator value)
func (c *Cart) ItemCount() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Snapshot returns a defensive copy of the line items for rendering
func (c *Cart) Snapshot() []LineItem {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return items
}

// IsEmpty returns true when the cart holds no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal returns the sum of line totals at full precision
func (c *Cart) Subtotal() valueobject.Money {
	sum := decimal.Zero
	for _, item := range c.Items {
		sum = sum.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return valueobject.NewMoneyUSD(sum)
}

// Clear empties the cart. It emits no event; purchase completion emits
// its own event and clear is the unconditional step that follows it.
func (c *Cart) Clear() {
	c.Items = c.Items[:0]
	c.UpdatedAt = time.Now()
}

// findItem returns the index of the item with the given name, -1 if absent
func (c *Cart) findItem(name string) int {
	for idx := range c.Items {
		if c.Items[idx].Name == name {
			return idx
		}
	}
	return -1
}
