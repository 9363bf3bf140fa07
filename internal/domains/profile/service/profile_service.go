package service

import (
	"context"
	"fmt"
	"time"

	"tattoo-backend/internal/domains/profile"
	"tattoo-backend/internal/infrastructure/storage"
	"tattoo-backend/internal/shared/utils"
	"tattoo-backend/pkg/logger"

	"github.com/google/uuid"
)

type profileService struct {
	repo        profile.ProfileRepository
	storage     *storage.MinIOStorage
	invalidator CacheInvalidator
}

// CacheInvalidator flushes caches that embed denormalized author data.
type CacheInvalidator interface {
	InvalidateAll()
}

func NewProfileService(repo profile.ProfileRepository, store *storage.MinIOStorage, invalidator CacheInvalidator) profile.ProfileService {
	return &profileService{
		repo:        repo,
		storage:     store,
		invalidator: invalidator,
	}
}

func (s *profileService) Create(ctx context.Context, userID uuid.UUID, req profile.CreateProfileRequest) (*profile.Profile, error) {
	// Step 1: Validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: One profile per user
	if _, err := s.repo.GetByUserID(ctx, userID); err == nil {
		return nil, profile.ErrProfileExists
	}

	now := time.Now()
	p := &profile.Profile{
		ID:          uuid.New(),
		UserID:      userID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Bio:         req.Bio,
		Specialty:   req.Specialty,
		IsArtist:    req.IsArtist,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.Info("profile created: " + p.FullName())
	return p, nil
}

func (s *profileService) GetByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *profileService) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]profile.Profile, error) {
	return s.repo.GetByIDs(ctx, utils.UniqueUUIDs(ids))
}

func (s *profileService) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *profileService) ListArtists(ctx context.Context, filter profile.Filter) ([]profile.Profile, int64, error) {
	filter.ArtistsOnly = true
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *profileService) Update(ctx context.Context, userID, profileID uuid.UUID, req profile.UpdateProfileRequest) (*profile.Profile, error) {
	// Step 1: Validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Load and check ownership
	p, err := s.repo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, profile.ErrNotOwner
	}

	// Step 3: Apply partial update
	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.Specialty != nil {
		p.Specialty = *req.Specialty
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	// Step 4: Cached content embeds the old display name; flush it
	if s.invalidator != nil {
		s.invalidator.InvalidateAll()
	}
	return p, nil
}

func (s *profileService) UploadAvatar(ctx context.Context, userID, profileID uuid.UUID, data []byte, contentType string) (string, error) {
	p, err := s.repo.GetByID(ctx, profileID)
	if err != nil {
		return "", err
	}
	if p.UserID != userID {
		return "", profile.ErrNotOwner
	}

	key := fmt.Sprintf("profiles/%s/avatar", profileID)
	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateAvatar(ctx, profileID, url); err != nil {
		return "", err
	}
	if s.invalidator != nil {
		s.invalidator.InvalidateAll()
	}
	return url, nil
}
