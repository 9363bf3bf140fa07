package category

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository is the persistence contract for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	// GetByIDs loads a batch of categories in a single query. Ids that do
	// not resolve are simply absent from the result map.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context, filter Filter) ([]Category, int64, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountPublishedPosts(ctx context.Context, id uuid.UUID) (int64, error)
}
