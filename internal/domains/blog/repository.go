package blog

import (
	"context"

	"github.com/google/uuid"
)

type PostRepository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, filter PostFilter) ([]Post, int64, error)
	Update(ctx context.Context, p *Post) error
	Publish(ctx context.Context, id uuid.UUID) (*Post, error)
	SetCover(ctx context.Context, id uuid.UUID, coverURL string) error
}
