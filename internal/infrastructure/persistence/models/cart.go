package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/urbanthreads/cartservice/internal/domain/cart"
)

// CartModel is the persistence model for the cart aggregate
type CartModel struct {
	AggregateModel
	Items []CartItemModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for CartModel
func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel is the persistence model for a cart line item.
// Position preserves insertion order across reloads.
type CartItemModel struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	CartID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_cart_items_cart_id"`
	Position  int             `gorm:"not null"`
	Name      string          `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	ImageRef  string          `gorm:""`
	Quantity  int             `gorm:"not null"`
	AddedAt   time.Time       `gorm:"not null"`
}

// TableName specifies the table name for CartItemModel
func (CartItemModel) TableName() string {
	return "cart_items"
}

// FromDomain populates the cart model and its item rows from the aggregate
func (m *CartModel) FromDomain(c *cart.Cart) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	snapshot := c.Snapshot()
	m.Items = make([]CartItemModel, 0, len(snapshot))
	for i, item := range snapshot {
		m.Items = append(m.Items, CartItemModel{
			CartID:    c.ID,
			Position:  i,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			ImageRef:  item.ImageRef,
			Quantity:  item.Quantity,
			AddedAt:   item.AddedAt,
		})
	}
}

// ToDomain reconstructs the cart aggregate from persistence rows
func (m *CartModel) ToDomain() *cart.Cart {
	items := make([]cart.LineItem, 0, len(m.Items))
	for _, row := range m.Items {
		items = append(items, cart.LineItem{
			Name:      row.Name,
			UnitPrice: row.UnitPrice,
			ImageRef:  row.ImageRef,
			Quantity:  row.Quantity,
			AddedAt:   row.AddedAt,
		})
	}
	return cart.RestoreCart(m.ID, m.Version, m.CreatedAt, m.UpdatedAt, items)
}
