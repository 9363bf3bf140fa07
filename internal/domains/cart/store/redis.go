package store

import (
	"context"
	"encoding/json"
	"fmt"

	"tattoo-backend/internal/domains/cart"
	"tattoo-backend/pkg/cache"
	"tattoo-backend/pkg/logger"
)

// RedisStore persists carts as JSON under cart:{sessionID} with the
// cart TTL as key expiry, so expired carts disappear without a sweep.
// Writes are last-write-wins: two tabs mutating the same session race
// and the later Save overwrites the earlier one.
type RedisStore struct {
	cache cache.Cache
}

func NewRedisStore(c cache.Cache) *RedisStore {
	return &RedisStore{cache: c}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	var raw json.RawMessage
	found, err := s.cache.Get(ctx, cartKey(sessionID), &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if !found {
		return cart.NewCart(sessionID), nil
	}

	c, err := migrateCart(raw)
	if err != nil {
		// A cart we cannot decode is unrecoverable; start the session over.
		logger.Error("cart: discarding undecodable cart for "+sessionID, err)
		return cart.NewCart(sessionID), nil
	}
	c.SessionID = sessionID
	return c, nil
}

func (s *RedisStore) Save(ctx context.Context, c *cart.Cart) error {
	c.SchemaVersion = cart.SchemaVersion
	if err := s.cache.Set(ctx, cartKey(c.SessionID), c, cart.TTL); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, cartKey(sessionID))
}

// ClearExpired is a no-op for Redis: the key TTL set on Save already
// expires untouched carts.
func (s *RedisStore) ClearExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

// legacyItem is the version 1 line layout: prices in integer cents,
// quantity under "qty", no artist snapshot.
type legacyItem struct {
	ProductID  string `json:"product_id"`
	Qty        int    `json:"qty"`
	PriceCents int64  `json:"price_cents"`
	Name       string `json:"name"`
	ImageURL   string `json:"image_url"`
}
