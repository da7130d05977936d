package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/urbanthreads/cartservice/internal/domain/cart"
	"github.com/urbanthreads/cartservice/internal/infrastructure/persistence/models"
)

// allModels lists every persistence model for schema migration
func allModels() []any {
	return []any{
		&models.CartModel{},
		&models.CartItemModel{},
	}
}

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB, logger *zap.Logger) *GormCartRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormCartRepository{db: db, logger: logger}
}

// Load retrieves the cart with the given ID. A cart that has never been
// saved, or whose stored state cannot be read back, yields a fresh empty
// cart rather than an error so shoppers never lose the page.
func (r *GormCartRepository) Load(ctx context.Context, cartID uuid.UUID) (*cart.Cart, error) {
	var model models.CartModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", cartID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cart.NewCartWithID(cartID), nil
		}
		return nil, fmt.Errorf("loading cart %s: %w", cartID, err)
	}

	err = r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("position ASC").
		Find(&model.Items).Error
	if err != nil {
		r.logger.Warn("Discarding unreadable cart state",
			zap.String("cart_id", cartID.String()),
			zap.Error(err),
		)
		return cart.NewCartWithID(cartID), nil
	}

	return model.ToDomain(), nil
}

// Save persists the full cart state, replacing any stored line items
// with the current snapshot in a single transaction.
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	var model models.CartModel
	model.FromDomain(c)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		header := model
		header.Items = nil
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&header).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", c.ID).Delete(&models.CartItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) == 0 {
			return nil
		}
		return tx.Create(&model.Items).Error
	})
	if err != nil {
		return fmt.Errorf("saving cart %s: %w", c.ID, err)
	}
	return nil
}
