package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tattoo-backend/internal/domains/profile"
	"tattoo-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) profile.ProfileRepository {
	return &postgresRepository{pool: pool}
}

const profileColumns = `id, user_id, first_name, last_name, bio, avatar_url, specialty, is_artist, created_at, updated_at`

func scanProfile(row pgx.Row, p *profile.Profile) error {
	return row.Scan(
		&p.ID,
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.Bio,
		&p.AvatarURL,
		&p.Specialty,
		&p.IsArtist,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, p *profile.Profile) error {
	const query = `
		INSERT INTO profiles (id, user_id, first_name, last_name, bio, avatar_url, specialty, is_artist, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.UserID, p.FirstName, p.LastName, p.Bio, p.AvatarURL, p.Specialty, p.IsArtist, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "idx_profiles_user_id" {
			return profile.ErrProfileExists
		}
		logger.Error("Create: database error", err)
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	p := &profile.Profile{}
	if err := scanProfile(r.pool.QueryRow(ctx, query, id), p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		logger.Error("GetByID: database error", err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]profile.Profile, error) {
	result := make(map[uuid.UUID]profile.Profile, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		logger.Error("GetByIDs: database error", err)
		return nil, fmt.Errorf("failed to batch get profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p profile.Profile
		if err := scanProfile(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		result[p.ID] = p
	}
	return result, rows.Err()
}

func (r *postgresRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	p := &profile.Profile{}
	if err := scanProfile(r.pool.QueryRow(ctx, query, userID), p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		logger.Error("GetByUserID: database error", err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) List(ctx context.Context, filter profile.Filter) ([]profile.Profile, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.ArtistsOnly {
		conditions = append(conditions, "is_artist = true")
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d OR specialty ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE `+where, args...).Scan(&total); err != nil {
		logger.Error("List: count error", err)
		return nil, 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT `+profileColumns+` FROM profiles WHERE %s ORDER BY first_name ASC, last_name ASC LIMIT $%d OFFSET $%d`,
		where, argIdx, argIdx+1,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("List: database error", err)
		return nil, 0, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []profile.Profile{}
	for rows.Next() {
		var p profile.Profile
		if err := scanProfile(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, total, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, p *profile.Profile) error {
	const query = `
		UPDATE profiles
		SET first_name = $2, last_name = $3, bio = $4, specialty = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, p.ID, p.FirstName, p.LastName, p.Bio, p.Specialty, p.UpdatedAt)
	if err != nil {
		logger.Error("Update: database error", err)
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}

func (r *postgresRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE profiles SET avatar_url = $2, updated_at = NOW() WHERE id = $1`,
		id, avatarURL,
	)
	if err != nil {
		logger.Error("UpdateAvatar: database error", err)
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}
