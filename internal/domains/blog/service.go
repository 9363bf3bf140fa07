package blog

import (
	"context"

	"github.com/google/uuid"
)

type BlogService interface {
	ListPosts(ctx context.Context, filter PostFilter) (*PostPage, error)
	GetBySlug(ctx context.Context, slug string) (*PostWithRelations, error)
	Create(ctx context.Context, authorID uuid.UUID, req CreatePostRequest) (*Post, error)
	Update(ctx context.Context, id uuid.UUID, req UpdatePostRequest) (*Post, error)
	Publish(ctx context.Context, id uuid.UUID) (*Post, error)
	UploadCover(ctx context.Context, id uuid.UUID, data []byte, contentType string) (string, error)
	// InvalidateAll drops every cached listing and post. Category and
	// profile mutations call it because their names are denormalized
	// into the cached read models.
	InvalidateAll()
	Close()
}
