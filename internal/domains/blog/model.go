package blog

import (
	"time"

	"github.com/google/uuid"
)

// Post is a blog entry. Category and author are nullable references;
// a nil PublishedAt marks a draft. Posts are never hard-deleted, the
// published flag is the only lifecycle state.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Body        string     `json:"body"`
	Excerpt     string     `json:"excerpt"`
	CoverURL    string     `json:"cover_url"`
	CategoryID  *uuid.UUID `json:"category_id"`
	AuthorID    *uuid.UUID `json:"author_id"`
	Tags        []string   `json:"tags"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PostWithRelations is the read model served to clients: the post plus
// denormalized category and author fields resolved by the aggregation
// layer. Unresolved references carry placeholder values, never nulls.
type PostWithRelations struct {
	Post
	CategoryName string `json:"category_name"`
	CategorySlug string `json:"category_slug"`
	AuthorName   string `json:"author_name"`
	AuthorAvatar string `json:"author_avatar"`
}

// PostFilter narrows post listings. It is part of the cache key, so it
// must marshal deterministically.
type PostFilter struct {
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	Search        string     `json:"search,omitempty"`
	PublishedOnly bool       `json:"published_only"`
	Page          int        `json:"page"`
	Limit         int        `json:"limit"`
}

// Offset converts the page index into a row offset.
func (f PostFilter) Offset() int {
	if f.Page < 0 {
		return 0
	}
	return f.Page * f.Limit
}

// PostPage is the cached unit for listings: rows plus the unfiltered
// total for pagination.
type PostPage struct {
	Posts []PostWithRelations `json:"posts"`
	Total int64               `json:"total"`
}
