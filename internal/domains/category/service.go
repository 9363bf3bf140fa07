package category

import (
	"context"

	"github.com/google/uuid"
)

// CategoryService exposes category use cases to handlers and to the blog
// aggregation layer.
type CategoryService interface {
	Create(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context, filter Filter) ([]Category, int64, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
