package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/urbanthreads/cartservice/internal/domain/shared"
	"github.com/urbanthreads/cartservice/internal/domain/shared/valueobject"
)

// PricingConfig holds the purchase pricing rules. Defaults mirror the
// storefront promotion: 10% coupon discount, 7% tax on the discounted
// subtotal, flat 3.00 shipping.
type PricingConfig struct {
	DiscountRate decimal.Decimal
	TaxRate      decimal.Decimal
	ShippingFlat decimal.Decimal
	CouponCode   string
}

// DefaultPricingConfig returns the documented default pricing rules
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		DiscountRate: decimal.NewFromFloat(0.10),
		TaxRate:      decimal.NewFromFloat(0.07),
		ShippingFlat: decimal.NewFromFloat(3.00),
		CouponCode:   "SUMMER20",
	}
}

// Validate checks the pricing configuration for sane bounds
func (p PricingConfig) Validate() error {
	if p.DiscountRate.IsNegative() || p.DiscountRate.GreaterThan(decimal.NewFromInt(1)) {
		return shared.NewDomainError("INVALID_INPUT", "Discount rate must be within [0, 1]")
	}
	if p.TaxRate.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Tax rate cannot be negative")
	}
	if p.ShippingFlat.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Shipping amount cannot be negative")
	}
	return nil
}

// OrderSummary is the computed breakdown for a completed purchase.
// All amounts are full precision; round only when presenting.
type OrderSummary struct {
	TransactionID      string
	ItemsSubtotal      valueobject.Money
	Discount           valueobject.Money
	DiscountedSubtotal valueobject.Money
	Tax                valueobject.Money
	Shipping           valueobject.Money
	Total              valueobject.Money
	CouponCode         string
	Items              []LineItem
}

// FinalizePurchase computes the order totals for the cart. It is a pure
// function: the cart is not mutated and nothing is persisted. The
// sequencing is a contract: discount off the items subtotal, then tax on
// the discounted amount, then flat shipping.
func FinalizePurchase(c *Cart, cfg PricingConfig) (*OrderSummary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.NewDomainError("NO_ITEMS", "Cannot finalize purchase of an empty cart")
	}

	itemsSubtotal := c.Subtotal()
	discount := itemsSubtotal.Multiply(cfg.DiscountRate)
	discountedSubtotal := itemsSubtotal.MustSubtract(discount)
	tax := discountedSubtotal.Multiply(cfg.TaxRate)
	shipping := valueobject.NewMoneyUSD(cfg.ShippingFlat)
	total := discountedSubtotal.MustAdd(tax).MustAdd(shipping)

	return &OrderSummary{
		TransactionID:      uuid.New().String(),
		ItemsSubtotal:      itemsSubtotal,
		Discount:           discount,
		DiscountedSubtotal: discountedSubtotal,
		Tax:                tax,
		Shipping:           shipping,
		Total:              total,
		CouponCode:         cfg.CouponCode,
		Items:              c.Snapshot(),
	}, nil
}
