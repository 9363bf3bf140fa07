package cart

import "errors"

var (
	ErrItemNotFound    = errors.New("product is not in the cart")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrProductGone     = errors.New("product is not available")
)
