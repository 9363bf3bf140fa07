package profile

import (
	"context"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	// GetByIDs resolves a batch of author ids in one query; unknown ids are
	// absent from the map.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	List(ctx context.Context, filter Filter) ([]Profile, int64, error)
	Update(ctx context.Context, p *Profile) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error
}
