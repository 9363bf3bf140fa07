package profile

import (
	"context"

	"github.com/google/uuid"
)

type ProfileService interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateProfileRequest) (*Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	ListArtists(ctx context.Context, filter Filter) ([]Profile, int64, error)
	Update(ctx context.Context, userID, profileID uuid.UUID, req UpdateProfileRequest) (*Profile, error)
	UploadAvatar(ctx context.Context, userID, profileID uuid.UUID, data []byte, contentType string) (string, error)
}
