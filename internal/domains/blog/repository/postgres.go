package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tattoo-backend/internal/domains/blog"
	"tattoo-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) blog.PostRepository {
	return &postgresRepository{pool: pool}
}

const postColumns = `id, title, slug, body, excerpt, cover_url, category_id, author_id, tags, published_at, created_at, updated_at`

func scanPost(row pgx.Row, p *blog.Post) error {
	return row.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Body,
		&p.Excerpt,
		&p.CoverURL,
		&p.CategoryID,
		&p.AuthorID,
		&p.Tags,
		&p.PublishedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, p *blog.Post) error {
	const query = `
		INSERT INTO posts (id, title, slug, body, excerpt, cover_url, category_id, author_id, tags, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Title, p.Slug, p.Body, p.Excerpt, p.CoverURL,
		p.CategoryID, p.AuthorID, p.Tags, p.PublishedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "idx_posts_slug" {
			return blog.ErrDuplicateSlug
		}
		logger.Error("Create: database error", err)
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	p := &blog.Post{}
	if err := scanPost(r.pool.QueryRow(ctx, query, id), p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blog.ErrPostNotFound
		}
		logger.Error("GetByID: database error", err)
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1`

	p := &blog.Post{}
	if err := scanPost(r.pool.QueryRow(ctx, query, slug), p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blog.ErrPostNotFound
		}
		logger.Error("GetBySlug: database error", err)
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) List(ctx context.Context, filter blog.PostFilter) ([]blog.Post, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.PublishedOnly {
		conditions = append(conditions, "published_at IS NOT NULL")
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", argIdx))
		args = append(args, *filter.CategoryID)
		argIdx++
	}
	if len(filter.Tags) > 0 {
		conditions = append(conditions, fmt.Sprintf("tags @> $%d", argIdx))
		args = append(args, filter.Tags)
		argIdx++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR body ILIKE $%d OR excerpt ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE `+where, args...).Scan(&total); err != nil {
		logger.Error("List: count error", err)
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	// Newest published first; drafts (null published_at) trail by creation time.
	query := fmt.Sprintf(
		`SELECT `+postColumns+` FROM posts WHERE %s
		 ORDER BY published_at DESC NULLS LAST, created_at DESC
		 LIMIT $%d OFFSET $%d`,
		where, argIdx, argIdx+1,
	)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("List: database error", err)
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []blog.Post{}
	for rows.Next() {
		var p blog.Post
		if err := scanPost(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, total, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, p *blog.Post) error {
	const query = `
		UPDATE posts
		SET title = $2, body = $3, excerpt = $4, category_id = $5, tags = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Title, p.Body, p.Excerpt, p.CategoryID, p.Tags, p.UpdatedAt,
	)
	if err != nil {
		logger.Error("Update: database error", err)
		return fmt.Errorf("failed to update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrPostNotFound
	}
	return nil
}

func (r *postgresRepository) Publish(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	const query = `
		UPDATE posts
		SET published_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND published_at IS NULL
		RETURNING ` + postColumns

	p := &blog.Post{}
	if err := scanPost(r.pool.QueryRow(ctx, query, id), p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either missing or already published; disambiguate.
			if _, getErr := r.GetByID(ctx, id); getErr == nil {
				return nil, blog.ErrAlreadyPublished
			}
			return nil, blog.ErrPostNotFound
		}
		logger.Error("Publish: database error", err)
		return nil, fmt.Errorf("failed to publish post: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) SetCover(ctx context.Context, id uuid.UUID, coverURL string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE posts SET cover_url = $2, updated_at = NOW() WHERE id = $1`,
		id, coverURL,
	)
	if err != nil {
		logger.Error("SetCover: database error", err)
		return fmt.Errorf("failed to set cover: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrPostNotFound
	}
	return nil
}
