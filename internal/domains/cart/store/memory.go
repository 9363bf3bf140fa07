package store

import (
	"context"
	"sync"
	"time"

	"tattoo-backend/internal/domains/cart"
)

// MemoryStore keeps carts in process memory. It is the base store:
// always available, no external dependency, lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]*cart.Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts: make(map[string]*cart.Cart),
	}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	s.mu.RLock()
	stored, ok := s.carts[sessionID]
	s.mu.RUnlock()

	if !ok {
		return cart.NewCart(sessionID), nil
	}

	// Hand out a copy so callers cannot mutate the stored cart without
	// going through Save.
	cp := *stored
	cp.Items = append([]cart.Item(nil), stored.Items...)
	return &cp, nil
}

func (s *MemoryStore) Save(ctx context.Context, c *cart.Cart) error {
	cp := *c
	cp.Items = append([]cart.Item(nil), c.Items...)

	s.mu.Lock()
	s.carts[c.SessionID] = &cp
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) ClearExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-cart.TTL)
	var dropped int64

	s.mu.Lock()
	for sessionID, c := range s.carts {
		if c.UpdatedAt.Before(cutoff) {
			delete(s.carts, sessionID)
			dropped++
		}
	}
	s.mu.Unlock()
	return dropped, nil
}
