package service

import (
	"context"
	"fmt"
	"time"

	"tattoo-backend/internal/domains/product"
	"tattoo-backend/internal/infrastructure/storage"
	"tattoo-backend/internal/shared/utils"
	"tattoo-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type productService struct {
	repo    product.ProductRepository
	storage *storage.MinIOStorage
}

func NewProductService(repo product.ProductRepository, store *storage.MinIOStorage) product.ProductService {
	return &productService{
		repo:    repo,
		storage: store,
	}
}

func (s *productService) Create(ctx context.Context, req product.CreateProductRequest) (*product.Product, error) {
	// Step 1: Validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Price comes in as a string to avoid float rounding
	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return nil, fmt.Errorf("invalid price: %s", req.Price)
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Name)
	}

	now := time.Now()
	p := &product.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Price:       price,
		ArtistID:    req.ArtistID,
		Category:    req.Category,
		Stock:       req.Stock,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.Info("product created: " + p.Slug)
	return p, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *productService) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]product.Product, error) {
	return s.repo.GetByIDs(ctx, utils.UniqueUUIDs(ids))
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*product.Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *productService) List(ctx context.Context, filter product.Filter) ([]product.Product, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 24
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req product.UpdateProductRequest) (*product.Product, error) {
	// Step 1: Validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Load current state
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Step 3: Apply partial update
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("invalid price: %s", *req.Price)
		}
		p.Price = price
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*product.Product, error) {
	return s.repo.AdjustStock(ctx, id, delta)
}

func (s *productService) UploadImage(ctx context.Context, id uuid.UUID, data []byte, contentType string) (string, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return "", err
	}

	key := fmt.Sprintf("products/%s/photo-%d", id, time.Now().Unix())
	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return "", err
	}

	if err := s.repo.SetImage(ctx, id, url); err != nil {
		return "", err
	}
	return url, nil
}
