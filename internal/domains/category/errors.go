package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateSlug    = errors.New("category slug already exists")
	ErrCategoryInUse    = errors.New("category is referenced by published posts")
)
