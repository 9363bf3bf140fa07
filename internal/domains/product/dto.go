package product

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateProductRequest struct {
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Price       string     `json:"price"`
	ArtistID    *uuid.UUID `json:"artist_id"`
	Category    string     `json:"category"`
	Stock       int        `json:"stock"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&r.Slug, validation.Length(0, 220)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.Price, validation.Required),
		validation.Field(&r.Category, validation.Length(0, 60)),
		validation.Field(&r.Stock, validation.Min(0)),
	)
}

type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Category    *string `json:"category"`
	IsActive    *bool   `json:"is_active"`
}

func (r UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(2, 200)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.Category, validation.Length(0, 60)),
	)
}

type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

func (r AdjustStockRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Delta, validation.Required),
	)
}
