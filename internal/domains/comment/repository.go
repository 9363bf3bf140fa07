package comment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	// ListApprovedTopLevel returns one page of approved top-level comments
	// for the post, newest first, plus the unpaged total.
	ListApprovedTopLevel(ctx context.Context, postID uuid.UUID, limit, offset int) ([]Comment, int64, error)
	// ListApprovedReplies returns the approved replies whose parent_id is
	// in the given set. One query, no recursion.
	ListApprovedReplies(ctx context.Context, parentIDs []uuid.UUID) ([]Comment, error)
	ListPending(ctx context.Context, limit, offset int) ([]Comment, int64, error)
	Approve(ctx context.Context, id uuid.UUID) (*Comment, error)
	Reject(ctx context.Context, id uuid.UUID) (*Comment, error)
	// DeleteRejectedBefore hard-deletes rejected rows older than cutoff.
	DeleteRejectedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
