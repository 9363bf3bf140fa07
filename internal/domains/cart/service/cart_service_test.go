package service

import (
	"context"
	"testing"

	"tattoo-backend/internal/domains/cart"
	"tattoo-backend/internal/domains/cart/store"
	"tattoo-backend/internal/domains/product"
	"tattoo-backend/internal/domains/profile"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== STUBS =====

type stubProducts struct {
	data map[uuid.UUID]product.Product
}

func (s *stubProducts) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]product.Product, error) {
	out := map[uuid.UUID]product.Product{}
	for _, id := range ids {
		if p, ok := s.data[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type stubArtists struct {
	data map[uuid.UUID]profile.Profile
}

func (s *stubArtists) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]profile.Profile, error) {
	out := map[uuid.UUID]profile.Profile{}
	for _, id := range ids {
		if p, ok := s.data[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func activeProduct(name, price string) product.Product {
	d, _ := decimal.NewFromString(price)
	return product.Product{
		ID:       uuid.New(),
		Name:     name,
		Slug:     name,
		Price:    d,
		IsActive: true,
		Stock:    10,
	}
}

func newTestService(products ...product.Product) (cart.CartService, *stubProducts) {
	byID := map[uuid.UUID]product.Product{}
	for _, p := range products {
		byID[p.ID] = p
	}
	stub := &stubProducts{data: byID}
	return NewCartService(store.NewMemoryStore(), stub, &stubArtists{}), stub
}

// ===== TESTS =====

func TestAddMergesQuantitiesByProduct(t *testing.T) {
	p := activeProduct("Print", "10.00")
	svc, _ := newTestService(p)
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess", p.ID, 1)
	require.NoError(t, err)
	view, err := svc.Add(ctx, "sess", p.ID, 2)
	require.NoError(t, err)

	require.Len(t, view.Items, 1, "adding the same product must merge, not append")
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.Equal(t, 3, view.ItemsCount)
}

func TestTotalsDerivedFromItems(t *testing.T) {
	// P1 at $10 x2 plus P2 at $5 gives items_count 3 and subtotal $25.
	p1 := activeProduct("P1", "10.00")
	p2 := activeProduct("P2", "5.00")
	svc, _ := newTestService(p1, p2)
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess", p1.ID, 2)
	require.NoError(t, err)
	view, err := svc.Add(ctx, "sess", p2.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, view.ItemsCount)
	assert.Equal(t, "25.00", view.Subtotal.StringFixed(2))
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	p := activeProduct("Print", "10.00")
	svc, _ := newTestService(p)
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess", p.ID, 2)
	require.NoError(t, err)

	view, err := svc.UpdateQuantity(ctx, "sess", p.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, view.Items, "quantity zero must remove the line entirely")
	assert.Equal(t, 0, view.ItemsCount)
	assert.True(t, view.Subtotal.IsZero())
}

func TestUpdateQuantitySetsNewValue(t *testing.T) {
	p := activeProduct("Print", "10.00")
	svc, _ := newTestService(p)
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess", p.ID, 5)
	require.NoError(t, err)

	view, err := svc.UpdateQuantity(ctx, "sess", p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Items[0].Quantity)

	_, err = svc.UpdateQuantity(ctx, "sess", uuid.New(), 1)
	assert.ErrorIs(t, err, cart.ErrItemNotFound)
}

func TestRemoveAndClear(t *testing.T) {
	p1 := activeProduct("P1", "10.00")
	p2 := activeProduct("P2", "5.00")
	svc, _ := newTestService(p1, p2)
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess", p1.ID, 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "sess", p2.ID, 1)
	require.NoError(t, err)

	view, err := svc.Remove(ctx, "sess", p1.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, p2.ID, view.Items[0].ProductID)

	view, err = svc.Clear(ctx, "sess")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestPriceSnapshotSurvivesCatalogChange(t *testing.T) {
	p := activeProduct("Print", "10.00")
	svc, stub := newTestService(p)
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess", p.ID, 1)
	require.NoError(t, err)

	// The catalog price changes after the first add.
	p.Price = decimal.RequireFromString("99.00")
	stub.data[p.ID] = p

	view, err := svc.Add(ctx, "sess", p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "10.00", view.Items[0].UnitPrice.StringFixed(2), "merge keeps the first-add snapshot")
	assert.Equal(t, "20.00", view.Subtotal.StringFixed(2))
}

func TestAddRejectsInvalidInput(t *testing.T) {
	p := activeProduct("Print", "10.00")
	inactive := activeProduct("Gone", "5.00")
	inactive.IsActive = false
	svc, _ := newTestService(p, inactive)
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess", p.ID, 0)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

	_, err = svc.Add(ctx, "sess", uuid.New(), 1)
	assert.ErrorIs(t, err, cart.ErrProductGone)

	_, err = svc.Add(ctx, "sess", inactive.ID, 1)
	assert.ErrorIs(t, err, cart.ErrProductGone)
}

func TestCartsAreSessionScoped(t *testing.T) {
	p := activeProduct("Print", "10.00")
	svc, _ := newTestService(p)
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess-a", p.ID, 1)
	require.NoError(t, err)

	view, err := svc.Get(ctx, "sess-b")
	require.NoError(t, err)
	assert.Empty(t, view.Items, "another session must see an empty cart")
}

func TestArtistNameSnapshotted(t *testing.T) {
	artist := profile.Profile{ID: uuid.New(), FirstName: "Ana", LastName: "Lima"}
	p := activeProduct("Print", "10.00")
	p.ArtistID = &artist.ID

	stubP := &stubProducts{data: map[uuid.UUID]product.Product{p.ID: p}}
	stubA := &stubArtists{data: map[uuid.UUID]profile.Profile{artist.ID: artist}}
	svc := NewCartService(store.NewMemoryStore(), stubP, stubA)

	view, err := svc.Add(context.Background(), "sess", p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana Lima", view.Items[0].ArtistName)
}
