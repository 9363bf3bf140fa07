package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tattoo-backend/internal/domains/product"
	"tattoo-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) product.ProductRepository {
	return &postgresRepository{pool: pool}
}

const productColumns = `id, name, slug, description, price, image_url, artist_id, category, stock, is_active, created_at, updated_at`

func scanProduct(row pgx.Row, p *product.Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&p.ArtistID,
		&p.Category,
		&p.Stock,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, p *product.Product) error {
	const query = `
		INSERT INTO products (id, name, slug, description, price, image_url, artist_id, category, stock, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Slug, p.Description, p.Price, p.ImageURL,
		p.ArtistID, p.Category, p.Stock, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "idx_products_slug" {
			return product.ErrDuplicateSlug
		}
		logger.Error("Create: database error", err)
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p := &product.Product{}
	if err := scanProduct(r.pool.QueryRow(ctx, query, id), p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrProductNotFound
		}
		logger.Error("GetByID: database error", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]product.Product, error) {
	result := make(map[uuid.UUID]product.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		logger.Error("GetByIDs: database error", err)
		return nil, fmt.Errorf("failed to batch get products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p product.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result[p.ID] = p
	}
	return result, rows.Err()
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`

	p := &product.Product{}
	if err := scanProduct(r.pool.QueryRow(ctx, query, slug), p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrProductNotFound
		}
		logger.Error("GetBySlug: database error", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) List(ctx context.Context, filter product.Filter) ([]product.Product, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.ActiveOnly {
		conditions = append(conditions, "is_active = true")
	}
	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE `+where, args...).Scan(&total); err != nil {
		logger.Error("List: count error", err)
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT `+productColumns+` FROM products WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, argIdx, argIdx+1,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("List: database error", err)
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []product.Product{}
	for rows.Next() {
		var p product.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, p *product.Product) error {
	const query = `
		UPDATE products
		SET name = $2, description = $3, price = $4, category = $5, is_active = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		logger.Error("Update: database error", err)
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

func (r *postgresRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*product.Product, error) {
	const query = `
		UPDATE products
		SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1 AND stock + $2 >= 0
		RETURNING ` + productColumns

	p := &product.Product{}
	if err := scanProduct(r.pool.QueryRow(ctx, query, id, delta), p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Missing row or the delta would drive stock negative.
			if _, getErr := r.GetByID(ctx, id); getErr == nil {
				return nil, product.ErrInvalidStock
			}
			return nil, product.ErrProductNotFound
		}
		logger.Error("AdjustStock: database error", err)
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) SetImage(ctx context.Context, id uuid.UUID, imageURL string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET image_url = $2, updated_at = NOW() WHERE id = $1`,
		id, imageURL,
	)
	if err != nil {
		logger.Error("SetImage: database error", err)
		return fmt.Errorf("failed to set image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}
