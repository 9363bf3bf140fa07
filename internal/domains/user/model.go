package user

import (
	"time"

	"github.com/google/uuid"
)

// Roles. Admin is never self-assignable through registration.
const (
	RoleClient = "client"
	RoleArtist = "artist"
	RoleStudio = "studio"
	RoleAdmin  = "admin"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegistrableRole reports whether a role may be chosen at sign-up.
func RegistrableRole(role string) bool {
	switch role {
	case RoleClient, RoleArtist, RoleStudio:
		return true
	default:
		return false
	}
}
