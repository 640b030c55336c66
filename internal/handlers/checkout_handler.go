package handlers

import (
	"errors"
	"fmt"
	"log"

	"resinshop/internal/gateway"
	"resinshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles the checkout flow and public order lookup.
type CheckoutHandler struct {
	service *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkout := router.Group("/checkout")
	checkout.Post("/enter", h.HandleEnter)
	checkout.Post("/disclaimer", h.HandleAcknowledgeDisclaimer)
	checkout.Post("/quote", h.HandleQuote)
	checkout.Post("/save", h.HandleSaveOrder)
	checkout.Post("/declare", h.HandleDeclarePayment)
	checkout.Post("/confirm", h.HandleConfirmDeclared)

	router.Post("/delivery/quote", h.HandleDeliveryQuote)
	router.Get("/orders/lookup/:code", h.HandleLookupOrder)
}

// redirectToCart answers empty-cart guards: checkout is unreachable
// without items, so the client is sent back to the cart page.
func redirectToCart(c *fiber.Ctx) error {
	return c.Redirect("/cart", fiber.StatusSeeOther)
}

// HandleEnter opens a checkout session. An empty cart redirects away.
func (h *CheckoutHandler) HandleEnter(c *fiber.Ctx) error {
	if err := h.service.Enter(); err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			return redirectToCart(c)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not start checkout",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"state": h.service.State(),
	})
}

// HandleAcknowledgeDisclaimer records the delivery-fee disclaimer.
func (h *CheckoutHandler) HandleAcknowledgeDisclaimer(c *fiber.Ctx) error {
	h.service.AcknowledgeDisclaimer()
	return c.JSON(fiber.Map{
		"message": "Disclaimer acknowledged",
	})
}

// HandleQuote computes the delivery fee from the within-base-zone flag.
func (h *CheckoutHandler) HandleQuote(c *fiber.Ctx) error {
	var req struct {
		WithinBaseZone bool `json:"within_base_zone"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing quote body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	fee, total, err := h.service.Quote(req.WithinBaseZone)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			return redirectToCart(c)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"delivery_fee": fee,
		"total":        total,
	})
}

// HandleDeliveryQuote matches a location against the delivery zones.
func (h *CheckoutHandler) HandleDeliveryQuote(c *fiber.Ctx) error {
	var req struct {
		Location string `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing delivery quote body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Location == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A location is required.",
		})
	}

	quote, err := h.service.QuoteByLocation(c.UserContext(), req.Location)
	if err != nil {
		log.Printf("Error quoting delivery for %q: %v", req.Location, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not quote delivery",
			"error":   err.Error(),
		})
	}
	return c.JSON(quote)
}

// HandleSaveOrder runs the save-order path of checkout.
func (h *CheckoutHandler) HandleSaveOrder(c *fiber.Ctx) error {
	var req struct {
		CustomerName string `json:"customer_name"`
		Location     string `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing save-order body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.SaveOrder(c.UserContext(), req.CustomerName, req.Location)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			return redirectToCart(c)
		}
		if errors.Is(err, services.ErrDisclaimerRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error saving order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save order",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleDeclarePayment runs the declare-payment path of checkout.
func (h *CheckoutHandler) HandleDeclarePayment(c *fiber.Ctx) error {
	var req struct {
		services.ContactInfo
		Location string `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing declare-payment body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.DeclarePayment(c.UserContext(), req.ContactInfo, req.Location)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			return redirectToCart(c)
		}
		if errors.Is(err, services.ErrDisclaimerRequired) || errors.Is(err, services.ErrNoContactMethod) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error declaring payment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not declare payment",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleConfirmDeclared finalizes a declared payment and returns the
// receipt.
func (h *CheckoutHandler) HandleConfirmDeclared(c *fiber.Ctx) error {
	receipt, err := h.service.ConfirmDeclared()
	if err != nil {
		if errors.Is(err, services.ErrNothingToConfirm) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error confirming declared payment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not confirm payment",
			"error":   err.Error(),
		})
	}
	return c.JSON(receipt)
}

// HandleLookupOrder returns an order by its public code.
func (h *CheckoutHandler) HandleLookupOrder(c *fiber.Ctx) error {
	code := c.Params("code")
	order, err := h.service.LookupOrder(c.UserContext(), code)
	if err != nil {
		log.Printf("Error looking up order %s: %v", code, err)
		if errors.Is(err, gateway.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with code %s not found", code),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not look up order",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}
