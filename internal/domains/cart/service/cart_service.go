package service

import (
	"context"

	"tattoo-backend/internal/domains/cart"
	"tattoo-backend/internal/domains/product"
	"tattoo-backend/internal/domains/profile"
	"tattoo-backend/pkg/logger"

	"github.com/google/uuid"
)

// ProductResolver and ArtistResolver are the catalog capabilities the
// cart needs: one batch product lookup for snapshots, one profile
// lookup for the denormalized artist name.
type ProductResolver interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]product.Product, error)
}

type ArtistResolver interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]profile.Profile, error)
}

type cartService struct {
	store    cart.Store
	products ProductResolver
	artists  ArtistResolver
}

func NewCartService(store cart.Store, products ProductResolver, artists ArtistResolver) cart.CartService {
	return &cartService{
		store:    store,
		products: products,
		artists:  artists,
	}
}

func (s *cartService) Get(ctx context.Context, sessionID string) (*cart.View, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	view := c.AsView()
	return &view, nil
}

func (s *cartService) Add(ctx context.Context, sessionID string, productID uuid.UUID, qty int) (*cart.View, error) {
	// Step 1: Validate quantity
	if qty <= 0 {
		return nil, cart.ErrInvalidQuantity
	}

	// Step 2: Load the cart
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Step 3: Existing line? Merge quantities, keep the original snapshot
	merged := false
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += qty
			merged = true
			break
		}
	}

	// Step 4: New line: snapshot price and display fields from the catalog
	if !merged {
		item, err := s.snapshot(ctx, productID, qty)
		if err != nil {
			return nil, err
		}
		c.Add(item)
	}

	// Step 5: Persist
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	view := c.AsView()
	return &view, nil
}

// snapshot builds a cart line from the current catalog state.
func (s *cartService) snapshot(ctx context.Context, productID uuid.UUID, qty int) (cart.Item, error) {
	products, err := s.products.GetByIDs(ctx, []uuid.UUID{productID})
	if err != nil {
		return cart.Item{}, err
	}
	p, ok := products[productID]
	if !ok || !p.IsActive {
		return cart.Item{}, cart.ErrProductGone
	}

	item := cart.Item{
		ProductID: p.ID,
		Quantity:  qty,
		UnitPrice: p.Price,
		Name:      p.Name,
		ImageURL:  p.ImageURL,
	}

	// The artist name is display sugar; a failed lookup degrades to an
	// empty field rather than failing the add.
	if p.ArtistID != nil {
		artists, err := s.artists.GetByIDs(ctx, []uuid.UUID{*p.ArtistID})
		if err != nil {
			logger.Error("cart: artist lookup failed", err)
		} else if a, ok := artists[*p.ArtistID]; ok {
			item.ArtistName = a.FullName()
		}
	}
	return item, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, qty int) (*cart.View, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !c.UpdateQuantity(productID, qty) {
		return nil, cart.ErrItemNotFound
	}

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	view := c.AsView()
	return &view, nil
}

func (s *cartService) Remove(ctx context.Context, sessionID string, productID uuid.UUID) (*cart.View, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !c.Remove(productID) {
		return nil, cart.ErrItemNotFound
	}

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	view := c.AsView()
	return &view, nil
}

func (s *cartService) Clear(ctx context.Context, sessionID string) (*cart.View, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.Clear()
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	view := c.AsView()
	return &view, nil
}
