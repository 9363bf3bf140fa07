package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SchemaVersion is the current persisted cart layout. Version 1 carts
// (no denormalized artist name, integer cent prices) are migrated on
// read by the Redis store.
const SchemaVersion = 2

// TTL is how long an untouched cart survives before the hourly
// clear_expired job (or the Redis key TTL) removes it.
const TTL = 30 * 24 * time.Hour

// Item is one cart line. UnitPrice, Name, ImageURL and ArtistName are
// snapshots taken from the catalog when the product was first added;
// later catalog edits do not rewrite lines already in a cart.
type Item struct {
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Name       string          `json:"name"`
	ImageURL   string          `json:"image_url"`
	ArtistName string          `json:"artist_name"`
}

// Cart is the authoritative (product, quantity) collection for one
// session. Totals are always derived from Items on read, never stored,
// so they cannot drift from the collection.
type Cart struct {
	SessionID     string    `json:"session_id"`
	SchemaVersion int       `json:"schema_version"`
	Items         []Item    `json:"items"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewCart returns an empty cart for the session.
func NewCart(sessionID string) *Cart {
	return &Cart{
		SessionID:     sessionID,
		SchemaVersion: SchemaVersion,
		Items:         []Item{},
		UpdatedAt:     time.Now(),
	}
}

// Add merges the item into the cart: quantities sum when the product is
// already present, otherwise the line is appended. The existing line's
// snapshot wins on merge.
func (c *Cart) Add(item Item) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			c.touch()
			return
		}
	}
	c.Items = append(c.Items, item)
	c.touch()
}

// UpdateQuantity sets the line's quantity. A quantity of zero or below
// removes the line entirely.
func (c *Cart) UpdateQuantity(productID uuid.UUID, qty int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			if qty <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = qty
			}
			c.touch()
			return true
		}
	}
	return false
}

// Remove deletes the line. Returns false if the product was not in the cart.
func (c *Cart) Remove(productID uuid.UUID) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch()
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.touch()
}

// ItemsCount is the total quantity across all lines.
func (c *Cart) ItemsCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal is the sum of quantity times snapshot price across all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
}

// View is the cart plus its derived totals, the shape handlers return.
type View struct {
	Cart
	ItemsCount int             `json:"items_count"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// AsView computes the derived totals for serialization.
func (c *Cart) AsView() View {
	return View{
		Cart:       *c,
		ItemsCount: c.ItemsCount(),
		Subtotal:   c.Subtotal(),
	}
}
