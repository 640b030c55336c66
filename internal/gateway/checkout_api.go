package gateway

import (
	"context"
	"fmt"
	"net/http"

	"resinshop/internal/models"
)

// CheckoutAPI is the order-submission slice of the backend API.
type CheckoutAPI interface {
	SaveOrder(ctx context.Context, req SaveOrderRequest) (*models.Order, error)
	DeclarePayment(ctx context.Context, req DeclarePaymentRequest) (*models.Order, error)
	LookupOrder(ctx context.Context, code string) (*models.Order, error)
	DeliveryQuote(ctx context.Context, location string) (*models.DeliveryQuote, error)
}

// SaveOrderRequest submits a cart with just a delivery location; the
// buyer settles contact and payment later.
type SaveOrderRequest struct {
	CartID       string   `json:"cart_id"`
	CustomerName string   `json:"customer_name,omitempty"`
	Location     string   `json:"location"`
	DeliveryFee  *float64 `json:"delivery_fee,omitempty"`
}

// DeclarePaymentRequest submits a cart with full contact info and
// declares a bank transfer for it.
type DeclarePaymentRequest struct {
	CartID       string   `json:"cart_id"`
	CustomerName string   `json:"customer_name"`
	Phone        string   `json:"phone,omitempty"`
	Email        string   `json:"email,omitempty"`
	Whatsapp     string   `json:"whatsapp,omitempty"`
	Location     string   `json:"location"`
	DeliveryFee  *float64 `json:"delivery_fee,omitempty"`
}

// SaveOrder creates an order in SAVED state and returns it with the
// server-issued code and computed totals.
func (c *Client) SaveOrder(ctx context.Context, req SaveOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders/save", req, &order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	return &order, nil
}

// DeclarePayment creates an order in DECLARED_PAID state and returns it
// with the bank transfer details the buyer should use.
func (c *Client) DeclarePayment(ctx context.Context, req DeclarePaymentRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders/declare-payment", req, &order); err != nil {
		return nil, fmt.Errorf("failed to declare payment: %w", err)
	}
	return &order, nil
}

// LookupOrder fetches an order by its human-readable code.
func (c *Client) LookupOrder(ctx context.Context, code string) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/lookup/"+code, nil, &order); err != nil {
		return nil, fmt.Errorf("failed to look up order %s: %w", code, err)
	}
	return &order, nil
}

// DeliveryQuote asks the server to match a location against the
// configured delivery zones.
func (c *Client) DeliveryQuote(ctx context.Context, location string) (*models.DeliveryQuote, error) {
	body := map[string]string{"location": location}
	var quote models.DeliveryQuote
	if err := c.doThrottled(ctx, http.MethodPost, "/delivery/quote", body, &quote); err != nil {
		return nil, fmt.Errorf("failed to quote delivery for %q: %w", location, err)
	}
	return &quote, nil
}
