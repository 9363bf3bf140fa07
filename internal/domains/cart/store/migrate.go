package store

import (
	"encoding/json"
	"fmt"
	"time"

	"tattoo-backend/internal/domains/cart"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// migrateCart decodes a persisted cart at any known schema version and
// upgrades it to the current layout. An absent schema_version means
// version 1. Unknown future versions are an error, not a silent guess.
func migrateCart(raw json.RawMessage) (*cart.Cart, error) {
	var probe struct {
		SchemaVersion int `json:"schema_version"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("failed to probe cart schema: %w", err)
	}

	switch probe.SchemaVersion {
	case 0, 1:
		return migrateV1(raw)
	case cart.SchemaVersion:
		c := &cart.Cart{}
		if err := json.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("failed to decode cart: %w", err)
		}
		if c.Items == nil {
			c.Items = []cart.Item{}
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cart schema version %d", probe.SchemaVersion)
	}
}

// migrateV1 upgrades the original layout: cent prices become decimals,
// "qty" becomes "quantity", the artist snapshot defaults to empty.
func migrateV1(raw json.RawMessage) (*cart.Cart, error) {
	var legacy struct {
		SessionID string       `json:"session_id"`
		Items     []legacyItem `json:"items"`
		UpdatedAt time.Time    `json:"updated_at"`
	}
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("failed to decode v1 cart: %w", err)
	}

	items := make([]cart.Item, 0, len(legacy.Items))
	for _, li := range legacy.Items {
		productID, err := uuid.Parse(li.ProductID)
		if err != nil {
			// Skip lines whose id no longer parses instead of losing the cart.
			continue
		}
		items = append(items, cart.Item{
			ProductID: productID,
			Quantity:  li.Qty,
			UnitPrice: decimal.New(li.PriceCents, -2),
			Name:      li.Name,
			ImageURL:  li.ImageURL,
		})
	}

	return &cart.Cart{
		SessionID:     legacy.SessionID,
		SchemaVersion: cart.SchemaVersion,
		Items:         items,
		UpdatedAt:     legacy.UpdatedAt,
	}, nil
}
