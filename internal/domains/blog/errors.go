package blog

import "errors"

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrDuplicateSlug    = errors.New("post slug already exists")
	ErrAlreadyPublished = errors.New("post is already published")
)
