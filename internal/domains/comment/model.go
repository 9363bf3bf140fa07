package comment

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reader comment on a blog post. Replies nest exactly one
// level: a reply's ParentID points at a top-level comment, never at
// another reply. Rows start unapproved and only approved rows are ever
// served to readers.
type Comment struct {
	ID         uuid.UUID  `json:"id"`
	PostID     uuid.UUID  `json:"post_id"`
	UserID     uuid.UUID  `json:"user_id"`
	ParentID   *uuid.UUID `json:"parent_id"`
	Content    string     `json:"content"`
	IsApproved bool       `json:"is_approved"`
	RejectedAt *time.Time `json:"rejected_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Pending reports whether the comment still awaits moderation.
func (c Comment) Pending() bool {
	return !c.IsApproved && c.RejectedAt == nil
}

// CommentWithAuthor is the read model: a comment plus its resolved
// author and, for top-level comments, its approved replies.
type CommentWithAuthor struct {
	Comment
	AuthorName   string              `json:"author_name"`
	AuthorAvatar string              `json:"author_avatar"`
	Replies      []CommentWithAuthor `json:"replies,omitempty"`
}

// CommentPage is the cached unit for a post's comment listing.
type CommentPage struct {
	Comments []CommentWithAuthor `json:"comments"`
	Total    int64               `json:"total"`
}
