package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a storefront item (print, aftercare kit, gift card).
// ArtistID optionally links the item to the studio member who made it.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	ArtistID    *uuid.UUID      `json:"artist_id"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Filter narrows catalog listings.
type Filter struct {
	Category   string `json:"category,omitempty"`
	Search     string `json:"search,omitempty"`
	ActiveOnly bool   `json:"active_only"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
}
