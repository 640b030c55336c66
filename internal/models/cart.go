package models

import "time"

// CartItem is a single line in a cart. Price, SKU and Title are
// snapshots captured by the server when the item was added; they never
// change afterwards, even if the catalog price does. Price is a
// string-encoded decimal exactly as the backend sends it.
type CartItem struct {
	ID        string    `json:"id"`
	CartID    string    `json:"cart_id"`
	VariantID string    `json:"variant_id"`
	Quantity  int       `json:"quantity"`
	Price     string    `json:"price"`
	SKU       string    `json:"sku"`
	Title     string    `json:"title"`
	AddedAt   time.Time `json:"added_at"`
}

// Cart mirrors the server-side cart. The id is issued by the server on
// creation and is the only piece of cart state the client owns.
type Cart struct {
	ID    string     `json:"id"`
	Items []CartItem `json:"items"`
}
