package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"resinshop/internal/gateway"
	"resinshop/internal/models"
)

// CatalogAdminService is the back-office CRUD layer: it validates
// payloads locally, then forwards them to the admin API. Validation
// failures never issue a request.
type CatalogAdminService struct {
	api      gateway.AdminCatalogAPI
	validate *validator.Validate
}

// NewCatalogAdminService creates a new CatalogAdminService.
func NewCatalogAdminService(api gateway.AdminCatalogAPI) *CatalogAdminService {
	return &CatalogAdminService{
		api:      api,
		validate: validator.New(),
	}
}

func (s *CatalogAdminService) check(v interface{}) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// SaveCategory creates or updates a category depending on whether it
// carries an id.
func (s *CatalogAdminService) SaveCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := s.check(category); err != nil {
		return nil, err
	}
	if category.ID == "" {
		return s.api.CreateCategory(ctx, category)
	}
	return s.api.UpdateCategory(ctx, category)
}

// DeleteCategory deletes a category by id.
func (s *CatalogAdminService) DeleteCategory(ctx context.Context, id string) error {
	return s.api.DeleteCategory(ctx, id)
}

// SaveProduct creates or updates a product.
func (s *CatalogAdminService) SaveProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := s.check(product); err != nil {
		return nil, err
	}
	if product.ID == "" {
		return s.api.CreateProduct(ctx, product)
	}
	return s.api.UpdateProduct(ctx, product)
}

// DeleteProduct deletes a product by id.
func (s *CatalogAdminService) DeleteProduct(ctx context.Context, id string) error {
	return s.api.DeleteProduct(ctx, id)
}

// SaveVariant creates or updates a variant under a product.
func (s *CatalogAdminService) SaveVariant(ctx context.Context, productID string, variant *models.Variant) (*models.Variant, error) {
	if err := s.check(variant); err != nil {
		return nil, err
	}
	if variant.ID == "" {
		if productID == "" {
			return nil, fmt.Errorf("a product id is required to create a variant")
		}
		return s.api.CreateVariant(ctx, productID, variant)
	}
	return s.api.UpdateVariant(ctx, variant)
}

// DeleteVariant deletes a variant by id.
func (s *CatalogAdminService) DeleteVariant(ctx context.Context, id string) error {
	return s.api.DeleteVariant(ctx, id)
}

// SaveOptionGroup creates or updates an option group under a product.
func (s *CatalogAdminService) SaveOptionGroup(ctx context.Context, productID string, group *models.OptionGroup) (*models.OptionGroup, error) {
	if err := s.check(group); err != nil {
		return nil, err
	}
	if group.ID == "" {
		if productID == "" {
			return nil, fmt.Errorf("a product id is required to create an option group")
		}
		return s.api.CreateOptionGroup(ctx, productID, group)
	}
	return s.api.UpdateOptionGroup(ctx, group)
}

// DeleteOptionGroup deletes an option group by id.
func (s *CatalogAdminService) DeleteOptionGroup(ctx context.Context, id string) error {
	return s.api.DeleteOptionGroup(ctx, id)
}

// ListDeliveryZones retrieves the configured delivery zones.
func (s *CatalogAdminService) ListDeliveryZones(ctx context.Context) ([]models.DeliveryZone, error) {
	return s.api.ListDeliveryZones(ctx)
}

// SaveDeliveryZone creates or updates a delivery zone.
func (s *CatalogAdminService) SaveDeliveryZone(ctx context.Context, zone *models.DeliveryZone) (*models.DeliveryZone, error) {
	if err := s.check(zone); err != nil {
		return nil, err
	}
	if zone.ID == "" {
		return s.api.CreateDeliveryZone(ctx, zone)
	}
	return s.api.UpdateDeliveryZone(ctx, zone)
}

// DeleteDeliveryZone deletes a delivery zone by id.
func (s *CatalogAdminService) DeleteDeliveryZone(ctx context.Context, id string) error {
	return s.api.DeleteDeliveryZone(ctx, id)
}

// GetConfig retrieves the storefront settings record.
func (s *CatalogAdminService) GetConfig(ctx context.Context) (*models.AppConfig, error) {
	return s.api.GetAdminConfig(ctx)
}

// UpdateConfig replaces the storefront settings record.
func (s *CatalogAdminService) UpdateConfig(ctx context.Context, cfg *models.AppConfig) (*models.AppConfig, error) {
	if err := s.check(cfg); err != nil {
		return nil, err
	}
	return s.api.UpdateAdminConfig(ctx, cfg)
}
