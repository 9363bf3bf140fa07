package blog

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Body       string     `json:"body"`
	Excerpt    string     `json:"excerpt"`
	CategoryID *uuid.UUID `json:"category_id"`
	Tags       []string   `json:"tags"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&r.Slug, validation.Length(0, 220)),
		validation.Field(&r.Body, validation.Required),
		validation.Field(&r.Excerpt, validation.Length(0, 500)),
		validation.Field(&r.Tags, validation.Length(0, 20)),
	)
}

type UpdatePostRequest struct {
	Title      *string    `json:"title"`
	Body       *string    `json:"body"`
	Excerpt    *string    `json:"excerpt"`
	CategoryID *uuid.UUID `json:"category_id"`
	Tags       *[]string  `json:"tags"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(3, 200)),
		validation.Field(&r.Body, validation.NilOrNotEmpty),
		validation.Field(&r.Excerpt, validation.Length(0, 500)),
	)
}
