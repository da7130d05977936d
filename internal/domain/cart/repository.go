package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the storage collaborator for persisted cart state.
// The cart service is the sole writer of a given cart's persisted slot.
type Repository interface {
	// Load returns the last saved cart for the id, or an empty cart when
	// nothing is stored or the stored state is unreadable. Unreadable
	// state is not an error.
	Load(ctx context.Context, cartID uuid.UUID) (*Cart, error)

	// Save overwrites the persisted state with the cart's current state.
	// The write is atomic from the caller's perspective.
	Save(ctx context.Context, c *Cart) error
}
