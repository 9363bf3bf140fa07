package product

import (
	"context"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// GetByIDs loads a batch in one query, for cart snapshots.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, filter Filter) ([]Product, int64, error)
	Update(ctx context.Context, p *Product) error
	// AdjustStock applies a delta atomically and fails if the result
	// would be negative.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*Product, error)
	SetImage(ctx context.Context, id uuid.UUID, imageURL string) error
}
