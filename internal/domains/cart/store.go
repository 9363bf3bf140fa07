package cart

import "context"

// Store persists carts by session id. Two implementations exist: the
// in-memory base store and the Redis-backed store used when Redis is
// configured. Which one a deployment gets is the container's decision.
type Store interface {
	// Get returns the session's cart, or a fresh empty cart if none is
	// stored yet.
	Get(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, sessionID string) error
	// ClearExpired removes carts untouched for longer than TTL and
	// reports how many were dropped.
	ClearExpired(ctx context.Context) (int64, error)
}
