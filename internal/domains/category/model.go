package category

import (
	"time"

	"github.com/google/uuid"
)

// Category is a blog content category ("Old School", "Cuidados", ...).
// Posts reference it by id; the reference is nullable on the post side.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlaceholderName is attached to posts whose category is missing or was
// deleted upstream between fetches. The join never fails over a dangling
// foreign key; it degrades to this value.
const PlaceholderName = "Sem categoria"

// Placeholder returns the well-defined substitute category.
func Placeholder() Category {
	return Category{
		ID:   uuid.Nil,
		Name: PlaceholderName,
		Slug: "sem-categoria",
	}
}

// Filter narrows category listings.
type Filter struct {
	Search string `json:"search,omitempty"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}
