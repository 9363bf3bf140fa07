package store

import (
	"encoding/json"
	"testing"

	"tattoo-backend/internal/domains/cart"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCartUpgradesV1(t *testing.T) {
	productID := uuid.New()
	raw := json.RawMessage(`{
		"session_id": "abc",
		"items": [
			{"product_id": "` + productID.String() + `", "qty": 3, "price_cents": 1999, "name": "Print Old School", "image_url": "http://cdn/p.jpg"}
		],
		"updated_at": "2026-01-10T12:00:00Z"
	}`)

	c, err := migrateCart(raw)
	require.NoError(t, err)

	assert.Equal(t, cart.SchemaVersion, c.SchemaVersion)
	require.Len(t, c.Items, 1)
	assert.Equal(t, productID, c.Items[0].ProductID)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, "19.99", c.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "Print Old School", c.Items[0].Name)
	assert.Empty(t, c.Items[0].ArtistName, "v1 carts carry no artist snapshot")
}

func TestMigrateCartPassesThroughCurrentVersion(t *testing.T) {
	orig := cart.NewCart("sess")
	orig.Add(cart.Item{ProductID: uuid.New(), Quantity: 2, Name: "Kit"})
	raw, err := json.Marshal(orig)
	require.NoError(t, err)

	c, err := migrateCart(raw)
	require.NoError(t, err)
	assert.Equal(t, orig.Items, c.Items)
}

func TestMigrateCartRejectsUnknownVersion(t *testing.T) {
	_, err := migrateCart(json.RawMessage(`{"schema_version": 99}`))
	assert.Error(t, err)
}

func TestMigrateCartSkipsUnparseableV1Lines(t *testing.T) {
	raw := json.RawMessage(`{
		"session_id": "abc",
		"items": [
			{"product_id": "not-a-uuid", "qty": 1, "price_cents": 100, "name": "x"},
			{"product_id": "` + uuid.NewString() + `", "qty": 1, "price_cents": 500, "name": "ok"}
		]
	}`)

	c, err := migrateCart(raw)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "ok", c.Items[0].Name)
}
