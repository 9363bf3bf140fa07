package product

import (
	"context"

	"github.com/google/uuid"
)

type ProductService interface {
	Create(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, filter Filter) ([]Product, int64, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*Product, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*Product, error)
	UploadImage(ctx context.Context, id uuid.UUID, data []byte, contentType string) (string, error)
}
