package user

import (
	"context"

	"github.com/google/uuid"
)

type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}
