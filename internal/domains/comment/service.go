package comment

import (
	"context"

	"github.com/google/uuid"
)

type CommentService interface {
	// Create stores a new comment awaiting moderation. The approval flag
	// from the client is ignored; every new row starts unapproved.
	Create(ctx context.Context, userID, postID uuid.UUID, req CreateCommentRequest) (*Comment, error)
	// ListByPost serves the approved comment thread for a post.
	ListByPost(ctx context.Context, postID uuid.UUID, page, limit int) (*CommentPage, error)
	ListPending(ctx context.Context, page, limit int) ([]Comment, int64, error)
	Approve(ctx context.Context, id uuid.UUID) (*Comment, error)
	Reject(ctx context.Context, id uuid.UUID) (*Comment, error)
	Close()
}
