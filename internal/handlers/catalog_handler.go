package handlers

import (
	"errors"
	"fmt"
	"log"

	"resinshop/internal/gateway"
	"resinshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles public catalog requests.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service: service,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleListProducts)
	router.Get("/products/:slug", h.HandleGetProduct)
	router.Post("/products/:slug/resolve", h.HandleResolveSelection)
	router.Get("/categories", h.HandleListCategories)
	router.Get("/config", h.HandleGetConfig)
}

// HandleListProducts lists products, optionally filtered by ?search=.
func (h *CatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.UserContext(), c.Query("search"))
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetProduct returns a product with the auto-selected defaults
// already resolved, so the page can render a live buy button.
func (h *CatalogHandler) HandleGetProduct(c *fiber.Ctx) error {
	slug := c.Params("slug")
	view, err := h.service.GetProductView(c.UserContext(), slug)
	if err != nil {
		log.Printf("Error getting product %s: %v", slug, err)
		if errors.Is(err, gateway.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product %s not found", slug),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	return c.JSON(view)
}

// HandleResolveSelection resolves an explicit option selection for a
// product and returns the variant, unit price and eligibility.
func (h *CatalogHandler) HandleResolveSelection(c *fiber.Ctx) error {
	slug := c.Params("slug")
	var req struct {
		Selection services.Selection `json:"selection"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing selection body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Selection == nil {
		req.Selection = services.Selection{}
	}

	view, err := h.service.ResolveSelection(c.UserContext(), slug, req.Selection)
	if err != nil {
		log.Printf("Error resolving selection for product %s: %v", slug, err)
		if errors.Is(err, gateway.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product %s not found", slug),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not resolve selection",
			"error":   err.Error(),
		})
	}
	return c.JSON(view)
}

// HandleListCategories lists the storefront categories.
func (h *CatalogHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve categories",
			"error":   err.Error(),
		})
	}
	return c.JSON(categories)
}

// HandleGetConfig returns the public storefront settings.
func (h *CatalogHandler) HandleGetConfig(c *fiber.Ctx) error {
	cfg, err := h.service.GetAppConfig(c.UserContext())
	if err != nil {
		log.Printf("Error getting app config: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve configuration",
			"error":   err.Error(),
		})
	}
	return c.JSON(cfg)
}
