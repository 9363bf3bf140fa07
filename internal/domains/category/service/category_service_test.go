package service

import (
	"context"
	"testing"

	"tattoo-backend/internal/domains/category"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== STUBS =====

type stubRepo struct {
	byID           map[uuid.UUID]category.Category
	publishedCount map[uuid.UUID]int64
	deleted        []uuid.UUID
}

func (s *stubRepo) Create(ctx context.Context, c *category.Category) error { return nil }

func (s *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	if c, ok := s.byID[id]; ok {
		return &c, nil
	}
	return nil, category.ErrCategoryNotFound
}

func (s *stubRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]category.Category, error) {
	out := make(map[uuid.UUID]category.Category)
	for _, id := range ids {
		if c, ok := s.byID[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (s *stubRepo) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	return nil, category.ErrCategoryNotFound
}

func (s *stubRepo) List(ctx context.Context, filter category.Filter) ([]category.Category, int64, error) {
	return nil, 0, nil
}

func (s *stubRepo) Update(ctx context.Context, c *category.Category) error { return nil }

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return category.ErrCategoryNotFound
	}
	s.deleted = append(s.deleted, id)
	delete(s.byID, id)
	return nil
}

func (s *stubRepo) CountPublishedPosts(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.publishedCount[id], nil
}

type stubInvalidator struct {
	calls int
}

func (s *stubInvalidator) InvalidateAll() { s.calls++ }

// ===== TESTS =====

func TestDeleteBlockedWhilePublishedPostsUseCategory(t *testing.T) {
	id := uuid.New()
	repo := &stubRepo{
		byID:           map[uuid.UUID]category.Category{id: {ID: id, Name: "Old School", Slug: "old-school"}},
		publishedCount: map[uuid.UUID]int64{id: 3},
	}
	inv := &stubInvalidator{}
	svc := NewCategoryService(repo, inv)

	err := svc.Delete(context.Background(), id)

	require.ErrorIs(t, err, category.ErrCategoryInUse)
	assert.Empty(t, repo.deleted, "in-use category must not be removed")
	assert.Zero(t, inv.calls, "nothing changed, nothing to flush")
}

func TestDeleteRemovesUnusedCategory(t *testing.T) {
	id := uuid.New()
	repo := &stubRepo{
		byID:           map[uuid.UUID]category.Category{id: {ID: id, Name: "Aquarela", Slug: "aquarela"}},
		publishedCount: map[uuid.UUID]int64{},
	}
	inv := &stubInvalidator{}
	svc := NewCategoryService(repo, inv)

	err := svc.Delete(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id}, repo.deleted)
	assert.Equal(t, 1, inv.calls, "cached listings embed the category name")
}

// Drafts referencing the category do not block deletion; their dangling
// reference degrades to the placeholder at read time.
func TestDeleteIgnoresDraftReferences(t *testing.T) {
	id := uuid.New()
	repo := &stubRepo{
		byID:           map[uuid.UUID]category.Category{id: {ID: id, Name: "Fineline", Slug: "fineline"}},
		publishedCount: map[uuid.UUID]int64{id: 0},
	}
	svc := NewCategoryService(repo, &stubInvalidator{})

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Equal(t, []uuid.UUID{id}, repo.deleted)
}
