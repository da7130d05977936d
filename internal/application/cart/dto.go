package cart

import (
	"github.com/urbanthreads/cartservice/internal/domain/cart"
	"github.com/urbanthreads/cartservice/internal/domain/shared"
)

// AddItemRequest carries a product into the cart
type AddItemRequest struct {
	Name      string
	UnitPrice string
	ImageRef  string
}

// LineItemResponse represents one cart line for rendering
type LineItemResponse struct {
	Name      string `json:"name"`
	ItemID    string `json:"item_id"`
	UnitPrice string `json:"unit_price"`
	ImageRef  string `json:"image_ref"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

// CartResponse is the render collaborator's view of the cart
type CartResponse struct {
	CartID    string             `json:"cart_id"`
	Items     []LineItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Subtotal  string             `json:"subtotal"`
}

// EventResponse describes the analytics event a mutation produced
type EventResponse struct {
	Kind          string `json:"kind"`
	ItemID        string `json:"item_id"`
	ItemName      string `json:"item_name"`
	UnitPrice     string `json:"unit_price"`
	QuantityDelta int    `json:"quantity_delta"`
	Currency      string `json:"currency"`
}

// MutationResponse is the result of a cart mutation. Changed is false
// for the not-found no-op; Event is nil in that case.
type MutationResponse struct {
	Changed bool           `json:"changed"`
	Event   *EventResponse `json:"event,omitempty"`
	Cart    CartResponse   `json:"cart"`
}

// PurchaseResponse is the order summary returned by checkout.
// All amounts are rendered to two decimals at this boundary.
type PurchaseResponse struct {
	TransactionID      string             `json:"transaction_id"`
	ItemsSubtotal      string             `json:"items_subtotal"`
	Discount           string             `json:"discount"`
	DiscountedSubtotal string             `json:"discounted_subtotal"`
	Tax                string             `json:"tax"`
	Shipping           string             `json:"shipping"`
	Total              string             `json:"total"`
	Coupon             string             `json:"coupon"`
	Currency           string             `json:"currency"`
	Items              []LineItemResponse `json:"items"`
}

// ToCartResponse maps a cart aggregate to its render view
func ToCartResponse(c *cart.Cart) CartResponse {
	items := make([]LineItemResponse, 0, len(c.Items))
	for i := range c.Items {
		items = append(items, toLineItemResponse(&c.Items[i]))
	}
	return CartResponse{
		CartID:    c.ID.String(),
		Items:     items,
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal().StringFixed(2),
	}
}

func toLineItemResponse(item *cart.LineItem) LineItemResponse {
	return LineItemResponse{
		Name:      item.Name,
		ItemID:    cart.DeriveItemID(item.Name),
		UnitPrice: item.UnitPriceMoney().StringFixed(2),
		ImageRef:  item.ImageRef,
		Quantity:  item.Quantity,
		LineTotal: item.LineTotal().StringFixed(2),
	}
}

// ToEventResponse maps a cart domain event to its DTO
func ToEventResponse(event shared.DomainEvent) *EventResponse {
	switch e := event.(type) {
	case *cart.ItemAddedEvent:
		return &EventResponse{
			Kind:          e.EventType(),
			ItemID:        e.Item.ItemID,
			ItemName:      e.Item.ItemName,
			UnitPrice:     e.Item.Price,
			QuantityDelta: e.QuantityDelta,
			Currency:      e.Currency,
		}
	case *cart.ItemRemovedEvent:
		return &EventResponse{
			Kind:          e.EventType(),
			ItemID:        e.Item.ItemID,
			ItemName:      e.Item.ItemName,
			UnitPrice:     e.Item.Price,
			QuantityDelta: e.QuantityDelta,
			Currency:      e.Currency,
		}
	case *cart.QuantityIncreasedEvent:
		return &EventResponse{
			Kind:          e.EventType(),
			ItemID:        e.Item.ItemID,
			ItemName:      e.Item.ItemName,
			UnitPrice:     e.Item.Price,
			QuantityDelta: e.QuantityDelta,
			Currency:      e.Currency,
		}
	case *cart.QuantityDecreasedEvent:
		return &EventResponse{
			Kind:          e.EventType(),
			ItemID:        e.Item.ItemID,
			ItemName:      e.Item.ItemName,
			UnitPrice:     e.Item.Price,
			QuantityDelta: e.QuantityDelta,
			Currency:      e.Currency,
		}
	}
	return nil
}

// ToPurchaseResponse maps an order summary and its items to the DTO
func ToPurchaseResponse(summary *cart.OrderSummary) PurchaseResponse {
	items := make([]LineItemResponse, 0, len(summary.Items))
	for i := range summary.Items {
		items = append(items, toLineItemResponse(&summary.Items[i]))
	}
	return PurchaseResponse{
		TransactionID:      summary.TransactionID,
		ItemsSubtotal:      summary.ItemsSubtotal.StringFixed(2),
		Discount:           summary.Discount.StringFixed(2),
		DiscountedSubtotal: summary.DiscountedSubtotal.StringFixed(2),
		Tax:                summary.Tax.StringFixed(2),
		Shipping:           summary.Shipping.StringFixed(2),
		Total:              summary.Total.StringFixed(2),
		Coupon:             summary.CouponCode,
		Currency:           cart.SiteCurrency,
		Items:              items,
	}
}
