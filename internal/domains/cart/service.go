package cart

import (
	"context"

	"github.com/google/uuid"
)

type CartService interface {
	Get(ctx context.Context, sessionID string) (*View, error)
	// Add merges qty of the product into the session's cart, snapshotting
	// price and display fields from the catalog on first add.
	Add(ctx context.Context, sessionID string, productID uuid.UUID, qty int) (*View, error)
	// UpdateQuantity sets a line's quantity; qty <= 0 removes the line.
	UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, qty int) (*View, error)
	Remove(ctx context.Context, sessionID string, productID uuid.UUID) (*View, error)
	Clear(ctx context.Context, sessionID string) (*View, error)
}
