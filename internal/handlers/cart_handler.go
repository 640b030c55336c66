package handlers

import (
	"log"

	"resinshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles cart requests.
type CartHandler struct {
	cart *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cart *services.CartService) *CartHandler {
	return &CartHandler{
		cart: cart,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:itemID", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:itemID", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClear)
}

// HandleGetCart returns the mirrored cart with its subtotal.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"cart_id":  h.cart.CartID(),
		"items":    h.cart.Items(),
		"subtotal": h.cart.Subtotal(),
	})
}

// HandleAddItem adds a resolved variant to the cart, creating the cart
// lazily on the first add.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req struct {
		VariantID string `json:"variant_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-item body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.VariantID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A variant_id is required.",
		})
	}

	item, err := h.cart.AddItem(c.UserContext(), req.VariantID, req.Quantity)
	if err != nil {
		log.Printf("Error adding item to cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item to cart",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateQuantity sets a line's quantity; quantities below 1
// remove the line.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	itemID := c.Params("itemID")
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update-quantity body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.cart.UpdateQuantity(c.UserContext(), itemID, req.Quantity); err != nil {
		log.Printf("Error updating quantity for item %s: %v", itemID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update item quantity",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"items":    h.cart.Items(),
		"subtotal": h.cart.Subtotal(),
	})
}

// HandleRemoveItem removes a line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	itemID := c.Params("itemID")
	if err := h.cart.RemoveItem(c.UserContext(), itemID); err != nil {
		log.Printf("Error removing item %s: %v", itemID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove item",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"items":    h.cart.Items(),
		"subtotal": h.cart.Subtotal(),
	})
}

// HandleClear empties the cart.
func (h *CartHandler) HandleClear(c *fiber.Ctx) error {
	if err := h.cart.Clear(c.UserContext()); err != nil {
		log.Printf("Error clearing cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
	})
}
