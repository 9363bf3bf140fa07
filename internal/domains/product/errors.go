package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateSlug   = errors.New("product slug already exists")
	ErrProductInactive = errors.New("product is not available")
	ErrInvalidStock    = errors.New("stock cannot go negative")
)
