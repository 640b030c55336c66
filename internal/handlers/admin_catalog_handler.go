package handlers

import (
	"log"
	"strings"

	"resinshop/internal/models"
	"resinshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminCatalogHandler handles the back-office CRUD endpoints for the
// catalog, delivery zones and storefront settings.
type AdminCatalogHandler struct {
	service *services.CatalogAdminService
}

// NewAdminCatalogHandler creates a new AdminCatalogHandler.
func NewAdminCatalogHandler(service *services.CatalogAdminService) *AdminCatalogHandler {
	return &AdminCatalogHandler{
		service: service,
	}
}

// RegisterRoutes registers the admin catalog routes with the Fiber app.
// The router passed in is expected to carry the admin auth middleware.
func (h *AdminCatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/categories", h.HandleSaveCategory)
	router.Patch("/categories/:id", h.HandleSaveCategory)
	router.Delete("/categories/:id", h.HandleDeleteCategory)

	router.Post("/products", h.HandleSaveProduct)
	router.Patch("/products/:id", h.HandleSaveProduct)
	router.Delete("/products/:id", h.HandleDeleteProduct)

	router.Post("/products/:productID/variants", h.HandleSaveVariant)
	router.Patch("/variants/:id", h.HandleSaveVariant)
	router.Delete("/variants/:id", h.HandleDeleteVariant)

	router.Post("/products/:productID/option-groups", h.HandleSaveOptionGroup)
	router.Patch("/option-groups/:id", h.HandleSaveOptionGroup)
	router.Delete("/option-groups/:id", h.HandleDeleteOptionGroup)

	router.Get("/delivery-zones", h.HandleListDeliveryZones)
	router.Post("/delivery-zones", h.HandleSaveDeliveryZone)
	router.Patch("/delivery-zones/:id", h.HandleSaveDeliveryZone)
	router.Delete("/delivery-zones/:id", h.HandleDeleteDeliveryZone)

	router.Get("/config", h.HandleGetConfig)
	router.Patch("/config", h.HandleUpdateConfig)
}

// confirmDelete gates destructive actions behind an explicit
// confirm=true query parameter.
func confirmDelete(c *fiber.Ctx) bool {
	return c.Query("confirm") == "true"
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

func serverError(c *fiber.Ctx, message string, err error) error {
	log.Printf("%s: %v", message, err)
	if strings.Contains(err.Error(), "validation failed") {
		return badRequest(c, "Validation failed", err)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

func deleteNotConfirmed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Deletion must be confirmed with ?confirm=true",
	})
}

// HandleSaveCategory creates or updates a category.
func (h *AdminCatalogHandler) HandleSaveCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if id := c.Params("id"); id != "" {
		category.ID = id
	}
	saved, err := h.service.SaveCategory(c.UserContext(), &category)
	if err != nil {
		return serverError(c, "Could not save category", err)
	}
	return c.JSON(saved)
}

// HandleDeleteCategory deletes a category after explicit confirmation.
func (h *AdminCatalogHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	if !confirmDelete(c) {
		return deleteNotConfirmed(c)
	}
	if err := h.service.DeleteCategory(c.UserContext(), c.Params("id")); err != nil {
		return serverError(c, "Could not delete category", err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}

// HandleSaveProduct creates or updates a product.
func (h *AdminCatalogHandler) HandleSaveProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if id := c.Params("id"); id != "" {
		product.ID = id
	}
	saved, err := h.service.SaveProduct(c.UserContext(), &product)
	if err != nil {
		return serverError(c, "Could not save product", err)
	}
	return c.JSON(saved)
}

// HandleDeleteProduct deletes a product after explicit confirmation.
func (h *AdminCatalogHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if !confirmDelete(c) {
		return deleteNotConfirmed(c)
	}
	if err := h.service.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return serverError(c, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// HandleSaveVariant creates or updates a variant.
func (h *AdminCatalogHandler) HandleSaveVariant(c *fiber.Ctx) error {
	var variant models.Variant
	if err := c.BodyParser(&variant); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if id := c.Params("id"); id != "" {
		variant.ID = id
	}
	saved, err := h.service.SaveVariant(c.UserContext(), c.Params("productID"), &variant)
	if err != nil {
		return serverError(c, "Could not save variant", err)
	}
	return c.JSON(saved)
}

// HandleDeleteVariant deletes a variant after explicit confirmation.
func (h *AdminCatalogHandler) HandleDeleteVariant(c *fiber.Ctx) error {
	if !confirmDelete(c) {
		return deleteNotConfirmed(c)
	}
	if err := h.service.DeleteVariant(c.UserContext(), c.Params("id")); err != nil {
		return serverError(c, "Could not delete variant", err)
	}
	return c.JSON(fiber.Map{"message": "Variant deleted"})
}

// HandleSaveOptionGroup creates or updates an option group.
func (h *AdminCatalogHandler) HandleSaveOptionGroup(c *fiber.Ctx) error {
	var group models.OptionGroup
	if err := c.BodyParser(&group); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if id := c.Params("id"); id != "" {
		group.ID = id
	}
	saved, err := h.service.SaveOptionGroup(c.UserContext(), c.Params("productID"), &group)
	if err != nil {
		return serverError(c, "Could not save option group", err)
	}
	return c.JSON(saved)
}

// HandleDeleteOptionGroup deletes an option group after confirmation.
func (h *AdminCatalogHandler) HandleDeleteOptionGroup(c *fiber.Ctx) error {
	if !confirmDelete(c) {
		return deleteNotConfirmed(c)
	}
	if err := h.service.DeleteOptionGroup(c.UserContext(), c.Params("id")); err != nil {
		return serverError(c, "Could not delete option group", err)
	}
	return c.JSON(fiber.Map{"message": "Option group deleted"})
}

// HandleListDeliveryZones lists the configured delivery zones.
func (h *AdminCatalogHandler) HandleListDeliveryZones(c *fiber.Ctx) error {
	zones, err := h.service.ListDeliveryZones(c.UserContext())
	if err != nil {
		return serverError(c, "Could not retrieve delivery zones", err)
	}
	return c.JSON(zones)
}

// HandleSaveDeliveryZone creates or updates a delivery zone.
func (h *AdminCatalogHandler) HandleSaveDeliveryZone(c *fiber.Ctx) error {
	var zone models.DeliveryZone
	if err := c.BodyParser(&zone); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if id := c.Params("id"); id != "" {
		zone.ID = id
	}
	saved, err := h.service.SaveDeliveryZone(c.UserContext(), &zone)
	if err != nil {
		return serverError(c, "Could not save delivery zone", err)
	}
	return c.JSON(saved)
}

// HandleDeleteDeliveryZone deletes a delivery zone after confirmation.
func (h *AdminCatalogHandler) HandleDeleteDeliveryZone(c *fiber.Ctx) error {
	if !confirmDelete(c) {
		return deleteNotConfirmed(c)
	}
	if err := h.service.DeleteDeliveryZone(c.UserContext(), c.Params("id")); err != nil {
		return serverError(c, "Could not delete delivery zone", err)
	}
	return c.JSON(fiber.Map{"message": "Delivery zone deleted"})
}

// HandleGetConfig returns the storefront settings record.
func (h *AdminCatalogHandler) HandleGetConfig(c *fiber.Ctx) error {
	cfg, err := h.service.GetConfig(c.UserContext())
	if err != nil {
		return serverError(c, "Could not retrieve configuration", err)
	}
	return c.JSON(cfg)
}

// HandleUpdateConfig replaces the storefront settings record.
func (h *AdminCatalogHandler) HandleUpdateConfig(c *fiber.Ctx) error {
	var cfg models.AppConfig
	if err := c.BodyParser(&cfg); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	updated, err := h.service.UpdateConfig(c.UserContext(), &cfg)
	if err != nil {
		return serverError(c, "Could not update configuration", err)
	}
	return c.JSON(updated)
}
