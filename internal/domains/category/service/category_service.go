package service

import (
	"context"
	"time"

	"tattoo-backend/internal/domains/category"
	"tattoo-backend/internal/shared/utils"
	"tattoo-backend/pkg/logger"

	"github.com/google/uuid"
)

// CacheInvalidator is implemented by layers that hold denormalized category
// data (the blog aggregation cache). Mutations here must flush them, since
// category names are embedded into cached post listings.
type CacheInvalidator interface {
	InvalidateAll()
}

type categoryService struct {
	repo        category.CategoryRepository
	invalidator CacheInvalidator
}

func NewCategoryService(repo category.CategoryRepository, invalidator CacheInvalidator) category.CategoryService {
	return &categoryService{
		repo:        repo,
		invalidator: invalidator,
	}
}

func (s *categoryService) Create(ctx context.Context, req category.CreateCategoryRequest) (*category.Category, error) {
	// Step 1: Validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Derive slug when the client did not provide one
	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Name)
	}

	now := time.Now()
	c := &category.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Step 3: Persist
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	logger.Info("category created: " + c.Slug)
	return c, nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]category.Category, error) {
	return s.repo.GetByIDs(ctx, utils.UniqueUUIDs(ids))
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *categoryService) List(ctx context.Context, filter category.Filter) ([]category.Category, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req category.UpdateCategoryRequest) (*category.Category, error) {
	// Step 1: Validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Load current state
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Step 3: Apply partial update
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	// Step 4: Cached post listings embed the old name; flush them
	if s.invalidator != nil {
		s.invalidator.InvalidateAll()
	}
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	// Categories still referenced by published posts cannot be removed.
	// Dangling references on drafts degrade to the placeholder at read time.
	count, err := s.repo.CountPublishedPosts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return category.ErrCategoryInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateAll()
	}
	logger.Info("category deleted: " + id.String())
	return nil
}
