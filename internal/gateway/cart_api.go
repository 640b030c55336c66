package gateway

import (
	"context"
	"fmt"
	"net/http"

	"resinshop/internal/models"
)

// CartAPI is the cart slice of the backend API.
type CartAPI interface {
	CreateCart(ctx context.Context) (*models.Cart, error)
	GetCart(ctx context.Context, cartID string) (*models.Cart, error)
	AddItem(ctx context.Context, cartID string, req AddItemRequest) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartID, itemID string, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, cartID, itemID string) error
}

// AddItemRequest adds a resolved variant to a cart. The server captures
// the price/SKU/title snapshots on its side.
type AddItemRequest struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

// CreateCart asks the server for a fresh cart and returns it.
func (c *Client) CreateCart(ctx context.Context) (*models.Cart, error) {
	var cart models.Cart
	if err := c.do(ctx, http.MethodPost, "/cart", nil, &cart); err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return &cart, nil
}

// GetCart fetches the current server state of a cart.
func (c *Client) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	var cart models.Cart
	if err := c.do(ctx, http.MethodGet, "/cart/"+cartID, nil, &cart); err != nil {
		return nil, fmt.Errorf("failed to get cart %s: %w", cartID, err)
	}
	return &cart, nil
}

// AddItem appends a line to the cart and returns the confirmed item
// with its snapshots filled in.
func (c *Client) AddItem(ctx context.Context, cartID string, req AddItemRequest) (*models.CartItem, error) {
	var item models.CartItem
	if err := c.do(ctx, http.MethodPost, "/cart/"+cartID+"/items", req, &item); err != nil {
		return nil, fmt.Errorf("failed to add item to cart %s: %w", cartID, err)
	}
	return &item, nil
}

// UpdateItemQuantity sets a line's quantity and returns the updated item.
func (c *Client) UpdateItemQuantity(ctx context.Context, cartID, itemID string, quantity int) (*models.CartItem, error) {
	body := map[string]int{"quantity": quantity}
	var item models.CartItem
	if err := c.do(ctx, http.MethodPatch, "/cart/"+cartID+"/items/"+itemID, body, &item); err != nil {
		return nil, fmt.Errorf("failed to update item %s in cart %s: %w", itemID, cartID, err)
	}
	return &item, nil
}

// RemoveItem deletes a line from the cart.
func (c *Client) RemoveItem(ctx context.Context, cartID, itemID string) error {
	if err := c.do(ctx, http.MethodDelete, "/cart/"+cartID+"/items/"+itemID, nil, nil); err != nil {
		return fmt.Errorf("failed to remove item %s from cart %s: %w", itemID, cartID, err)
	}
	return nil
}
