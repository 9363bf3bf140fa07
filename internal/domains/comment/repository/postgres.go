package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tattoo-backend/internal/domains/comment"
	"tattoo-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) comment.CommentRepository {
	return &postgresRepository{pool: pool}
}

const commentColumns = `id, post_id, user_id, parent_id, content, is_approved, rejected_at, created_at, updated_at`

func scanComment(row pgx.Row, c *comment.Comment) error {
	return row.Scan(
		&c.ID,
		&c.PostID,
		&c.UserID,
		&c.ParentID,
		&c.Content,
		&c.IsApproved,
		&c.RejectedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, c *comment.Comment) error {
	const query = `
		INSERT INTO comments (id, post_id, user_id, parent_id, content, is_approved, rejected_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.PostID, c.UserID, c.ParentID, c.Content, c.IsApproved, c.RejectedAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		logger.Error("Create: database error", err)
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	c := &comment.Comment{}
	if err := scanComment(r.pool.QueryRow(ctx, query, id), c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, comment.ErrCommentNotFound
		}
		logger.Error("GetByID: database error", err)
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) ListApprovedTopLevel(ctx context.Context, postID uuid.UUID, limit, offset int) ([]comment.Comment, int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE post_id = $1 AND parent_id IS NULL AND is_approved = true`,
		postID,
	).Scan(&total)
	if err != nil {
		logger.Error("ListApprovedTopLevel: count error", err)
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	query := `SELECT ` + commentColumns + `
		FROM comments
		WHERE post_id = $1 AND parent_id IS NULL AND is_approved = true
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, postID, limit, offset)
	if err != nil {
		logger.Error("ListApprovedTopLevel: database error", err)
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []comment.Comment{}
	for rows.Next() {
		var c comment.Comment
		if err := scanComment(rows, &c); err != nil {
			return nil, 0, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, total, rows.Err()
}

func (r *postgresRepository) ListApprovedReplies(ctx context.Context, parentIDs []uuid.UUID) ([]comment.Comment, error) {
	if len(parentIDs) == 0 {
		return []comment.Comment{}, nil
	}

	query := `SELECT ` + commentColumns + `
		FROM comments
		WHERE parent_id = ANY($1) AND is_approved = true
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, parentIDs)
	if err != nil {
		logger.Error("ListApprovedReplies: database error", err)
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}
	defer rows.Close()

	replies := []comment.Comment{}
	for rows.Next() {
		var c comment.Comment
		if err := scanComment(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan reply: %w", err)
		}
		replies = append(replies, c)
	}
	return replies, rows.Err()
}

func (r *postgresRepository) ListPending(ctx context.Context, limit, offset int) ([]comment.Comment, int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE is_approved = false AND rejected_at IS NULL`,
	).Scan(&total)
	if err != nil {
		logger.Error("ListPending: count error", err)
		return nil, 0, fmt.Errorf("failed to count pending comments: %w", err)
	}

	query := `SELECT ` + commentColumns + `
		FROM comments
		WHERE is_approved = false AND rejected_at IS NULL
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		logger.Error("ListPending: database error", err)
		return nil, 0, fmt.Errorf("failed to list pending comments: %w", err)
	}
	defer rows.Close()

	comments := []comment.Comment{}
	for rows.Next() {
		var c comment.Comment
		if err := scanComment(rows, &c); err != nil {
			return nil, 0, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, total, rows.Err()
}

func (r *postgresRepository) Approve(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	const query = `
		UPDATE comments
		SET is_approved = true, rejected_at = NULL, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + commentColumns

	c := &comment.Comment{}
	if err := scanComment(r.pool.QueryRow(ctx, query, id), c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, comment.ErrCommentNotFound
		}
		logger.Error("Approve: database error", err)
		return nil, fmt.Errorf("failed to approve comment: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) Reject(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	const query = `
		UPDATE comments
		SET is_approved = false, rejected_at = NOW(), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + commentColumns

	c := &comment.Comment{}
	if err := scanComment(r.pool.QueryRow(ctx, query, id), c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, comment.ErrCommentNotFound
		}
		logger.Error("Reject: database error", err)
		return nil, fmt.Errorf("failed to reject comment: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) DeleteRejectedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM comments WHERE rejected_at IS NOT NULL AND rejected_at < $1`,
		cutoff,
	)
	if err != nil {
		logger.Error("DeleteRejectedBefore: database error", err)
		return 0, fmt.Errorf("failed to purge rejected comments: %w", err)
	}
	return tag.RowsAffected(), nil
}
