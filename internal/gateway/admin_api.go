package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"resinshop/internal/models"
)

// AdminOrderAPI is the admin order-review slice of the backend API.
// Every status move is its own one-way call.
type AdminOrderAPI interface {
	ListOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	MarkUnderReview(ctx context.Context, orderID string) (*models.Order, error)
	ApproveOrder(ctx context.Context, orderID string) (*models.Order, error)
	RejectOrder(ctx context.Context, orderID, reason string) (*models.Order, error)
}

// AdminCatalogAPI is the admin CRUD slice of the backend API.
type AdminCatalogAPI interface {
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	CreateVariant(ctx context.Context, productID string, variant *models.Variant) (*models.Variant, error)
	UpdateVariant(ctx context.Context, variant *models.Variant) (*models.Variant, error)
	DeleteVariant(ctx context.Context, id string) error

	CreateOptionGroup(ctx context.Context, productID string, group *models.OptionGroup) (*models.OptionGroup, error)
	UpdateOptionGroup(ctx context.Context, group *models.OptionGroup) (*models.OptionGroup, error)
	DeleteOptionGroup(ctx context.Context, id string) error

	ListDeliveryZones(ctx context.Context) ([]models.DeliveryZone, error)
	CreateDeliveryZone(ctx context.Context, zone *models.DeliveryZone) (*models.DeliveryZone, error)
	UpdateDeliveryZone(ctx context.Context, zone *models.DeliveryZone) (*models.DeliveryZone, error)
	DeleteDeliveryZone(ctx context.Context, id string) error

	GetAdminConfig(ctx context.Context) (*models.AppConfig, error)
	UpdateAdminConfig(ctx context.Context, cfg *models.AppConfig) (*models.AppConfig, error)
}

// ListOrders fetches orders, optionally filtered by status.
func (c *Client) ListOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	path := "/admin/orders"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetOrder fetches one order by id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, "/admin/orders/"+orderID, nil, &order); err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	return &order, nil
}

// MarkUnderReview moves a declared-paid order into review.
func (c *Client) MarkUnderReview(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/admin/orders/"+orderID+"/review", nil, &order); err != nil {
		return nil, fmt.Errorf("failed to mark order %s under review: %w", orderID, err)
	}
	return &order, nil
}

// ApproveOrder confirms an order under review.
func (c *Client) ApproveOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/admin/orders/"+orderID+"/approve", nil, &order); err != nil {
		return nil, fmt.Errorf("failed to approve order %s: %w", orderID, err)
	}
	return &order, nil
}

// RejectOrder rejects an order with a buyer-visible reason.
func (c *Client) RejectOrder(ctx context.Context, orderID, reason string) (*models.Order, error) {
	body := map[string]string{"reason": reason}
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/admin/orders/"+orderID+"/reject", body, &order); err != nil {
		return nil, fmt.Errorf("failed to reject order %s: %w", orderID, err)
	}
	return &order, nil
}

func (c *Client) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	var created models.Category
	if err := c.do(ctx, http.MethodPost, "/admin/categories", category, &created); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	var updated models.Category
	if err := c.do(ctx, http.MethodPatch, "/admin/categories/"+category.ID, category, &updated); err != nil {
		return nil, fmt.Errorf("failed to update category %s: %w", category.ID, err)
	}
	return &updated, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/admin/categories/"+id, nil, nil); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	return nil
}

func (c *Client) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	var created models.Product
	if err := c.do(ctx, http.MethodPost, "/admin/products", product, &created); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	var updated models.Product
	if err := c.do(ctx, http.MethodPatch, "/admin/products/"+product.ID, product, &updated); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", product.ID, err)
	}
	return &updated, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/admin/products/"+id, nil, nil); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

func (c *Client) CreateVariant(ctx context.Context, productID string, variant *models.Variant) (*models.Variant, error) {
	var created models.Variant
	if err := c.do(ctx, http.MethodPost, "/admin/products/"+productID+"/variants", variant, &created); err != nil {
		return nil, fmt.Errorf("failed to create variant for product %s: %w", productID, err)
	}
	return &created, nil
}

func (c *Client) UpdateVariant(ctx context.Context, variant *models.Variant) (*models.Variant, error) {
	var updated models.Variant
	if err := c.do(ctx, http.MethodPatch, "/admin/variants/"+variant.ID, variant, &updated); err != nil {
		return nil, fmt.Errorf("failed to update variant %s: %w", variant.ID, err)
	}
	return &updated, nil
}

func (c *Client) DeleteVariant(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/admin/variants/"+id, nil, nil); err != nil {
		return fmt.Errorf("failed to delete variant %s: %w", id, err)
	}
	return nil
}

func (c *Client) CreateOptionGroup(ctx context.Context, productID string, group *models.OptionGroup) (*models.OptionGroup, error) {
	var created models.OptionGroup
	if err := c.do(ctx, http.MethodPost, "/admin/products/"+productID+"/option-groups", group, &created); err != nil {
		return nil, fmt.Errorf("failed to create option group for product %s: %w", productID, err)
	}
	return &created, nil
}

func (c *Client) UpdateOptionGroup(ctx context.Context, group *models.OptionGroup) (*models.OptionGroup, error) {
	var updated models.OptionGroup
	if err := c.do(ctx, http.MethodPatch, "/admin/option-groups/"+group.ID, group, &updated); err != nil {
		return nil, fmt.Errorf("failed to update option group %s: %w", group.ID, err)
	}
	return &updated, nil
}

func (c *Client) DeleteOptionGroup(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/admin/option-groups/"+id, nil, nil); err != nil {
		return fmt.Errorf("failed to delete option group %s: %w", id, err)
	}
	return nil
}

func (c *Client) ListDeliveryZones(ctx context.Context) ([]models.DeliveryZone, error) {
	var zones []models.DeliveryZone
	if err := c.do(ctx, http.MethodGet, "/admin/delivery-zones", nil, &zones); err != nil {
		return nil, fmt.Errorf("failed to list delivery zones: %w", err)
	}
	return zones, nil
}

func (c *Client) CreateDeliveryZone(ctx context.Context, zone *models.DeliveryZone) (*models.DeliveryZone, error) {
	var created models.DeliveryZone
	if err := c.do(ctx, http.MethodPost, "/admin/delivery-zones", zone, &created); err != nil {
		return nil, fmt.Errorf("failed to create delivery zone: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateDeliveryZone(ctx context.Context, zone *models.DeliveryZone) (*models.DeliveryZone, error) {
	var updated models.DeliveryZone
	if err := c.do(ctx, http.MethodPatch, "/admin/delivery-zones/"+zone.ID, zone, &updated); err != nil {
		return nil, fmt.Errorf("failed to update delivery zone %s: %w", zone.ID, err)
	}
	return &updated, nil
}

func (c *Client) DeleteDeliveryZone(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/admin/delivery-zones/"+id, nil, nil); err != nil {
		return fmt.Errorf("failed to delete delivery zone %s: %w", id, err)
	}
	return nil
}

func (c *Client) GetAdminConfig(ctx context.Context) (*models.AppConfig, error) {
	var cfg models.AppConfig
	if err := c.do(ctx, http.MethodGet, "/admin/config", nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to get admin config: %w", err)
	}
	return &cfg, nil
}

func (c *Client) UpdateAdminConfig(ctx context.Context, cfg *models.AppConfig) (*models.AppConfig, error) {
	var updated models.AppConfig
	if err := c.do(ctx, http.MethodPatch, "/admin/config", cfg, &updated); err != nil {
		return nil, fmt.Errorf("failed to update admin config: %w", err)
	}
	return &updated, nil
}
