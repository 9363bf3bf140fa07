package profile

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("user already has a profile")
	ErrNotOwner        = errors.New("profile belongs to another user")
)
