package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"resinshop/internal/models"
)

// CatalogAPI is the public catalog slice of the backend API.
type CatalogAPI interface {
	ListProducts(ctx context.Context, search string) ([]models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetAppConfig(ctx context.Context) (*models.AppConfig, error)
}

// ListProducts fetches active products, optionally filtered by a search
// query. Search traffic is throttled.
func (c *Client) ListProducts(ctx context.Context, search string) ([]models.Product, error) {
	path := "/products"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var products []models.Product
	if err := c.doThrottled(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProductBySlug fetches one product with its option groups, variants
// and media.
func (c *Client) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+slug, nil, &product); err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", slug, err)
	}
	return &product, nil
}

// ListCategories fetches the storefront categories.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetAppConfig fetches the storefront settings (bank details, whatsapp
// link, checkout note).
func (c *Client) GetAppConfig(ctx context.Context) (*models.AppConfig, error) {
	var cfg models.AppConfig
	if err := c.do(ctx, http.MethodGet, "/config", nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to get app config: %w", err)
	}
	return &cfg, nil
}
