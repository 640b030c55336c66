package services

import (
	"context"
	"fmt"

	"resinshop/internal/gateway"
	"resinshop/internal/models"
)

// ProductView is a product paired with the resolver's verdict for a
// selection: what the unit costs, which variant it is, and whether the
// buy button should be live.
type ProductView struct {
	Product      *models.Product `json:"product,omitempty"`
	Selection    Selection       `json:"selection"`
	VariantID    string          `json:"variant_id"`
	UnitPrice    float64         `json:"unit_price"`
	Eligible     bool            `json:"eligible"`
	CanAddToCart bool            `json:"can_add_to_cart"`
}

// CatalogService serves the public storefront reads and applies the
// variant resolver on top of them.
type CatalogService struct {
	api gateway.CatalogAPI
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(api gateway.CatalogAPI) *CatalogService {
	return &CatalogService{
		api: api,
	}
}

// ListProducts retrieves products, optionally filtered by a search query.
func (s *CatalogService) ListProducts(ctx context.Context, search string) ([]models.Product, error) {
	return s.api.ListProducts(ctx, search)
}

// ListCategories retrieves the storefront categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.api.ListCategories(ctx)
}

// GetAppConfig retrieves the storefront settings.
func (s *CatalogService) GetAppConfig(ctx context.Context) (*models.AppConfig, error) {
	return s.api.GetAppConfig(ctx)
}

// GetProductView loads a product and returns it with the auto-selected
// defaults already resolved.
func (s *CatalogService) GetProductView(ctx context.Context, slug string) (*ProductView, error) {
	product, err := s.api.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %s: %w", slug, err)
	}
	view := Resolve(product, AutoSelect(product))
	view.Product = product
	return view, nil
}

// ResolveSelection loads a product and resolves an explicit selection
// against it, for selection-change requests from the product page.
func (s *CatalogService) ResolveSelection(ctx context.Context, slug string, sel Selection) (*ProductView, error) {
	product, err := s.api.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %s: %w", slug, err)
	}
	return Resolve(product, sel), nil
}

// Resolve runs the full resolver over a product and selection.
func Resolve(p *models.Product, sel Selection) *ProductView {
	return &ProductView{
		Selection:    sel,
		VariantID:    ResolveVariantID(p, sel),
		UnitPrice:    ComputeUnitPrice(p, sel),
		Eligible:     IsEligible(p, sel),
		CanAddToCart: CanAddToCart(p, sel),
	}
}
