package service

import (
	"context"
	"strings"
	"time"

	"tattoo-backend/internal/domains/user"
	"tattoo-backend/pkg/jwt"
	"tattoo-backend/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	repo user.UserRepository
	jwt  *jwt.Manager
}

func NewUserService(repo user.UserRepository, jwtManager *jwt.Manager) user.UserService {
	return &userService{
		repo: repo,
		jwt:  jwtManager,
	}
}

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.AuthResponse, error) {
	// Step 1: Validate input (email shape, password length and match)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !user.RegistrableRole(req.Role) {
		return nil, user.ErrInvalidRole
	}

	// Step 2: Hash the password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Step 3: Persist
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("user registered: " + u.Email)
	return s.issueTokens(u)
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.AuthResponse, error) {
	// Step 1: Validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Look up by email; an unknown email and a wrong password
	// produce the same error
	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, user.ErrUserDisabled
	}

	// Step 3: Verify the password
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, user.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

func (s *userService) Refresh(ctx context.Context, req user.RefreshRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	// Re-read the user so role changes and deactivation take effect on
	// the next access token, not on the next login.
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, user.ErrUserDisabled
	}

	return s.issueTokens(u)
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) issueTokens(u *user.User) (*user.AuthResponse, error) {
	access, err := s.jwt.GenerateAccessToken(u.ID.String(), u.Email, u.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwt.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, err
	}
	return &user.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         u,
	}, nil
}
