package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"resinshop/internal/gateway"
	"resinshop/internal/models"
	"resinshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminOrderHandler handles the admin order-review endpoints.
type AdminOrderHandler struct {
	service *services.OrderAdminService
}

// NewAdminOrderHandler creates a new AdminOrderHandler.
func NewAdminOrderHandler(service *services.OrderAdminService) *AdminOrderHandler {
	return &AdminOrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the admin order routes with the Fiber app.
// The router passed in is expected to carry the admin auth middleware.
func (h *AdminOrderHandler) RegisterRoutes(router fiber.Router) {
	orders := router.Group("/orders")
	orders.Get("/", h.HandleListOrders)
	orders.Get("/:id", h.HandleGetOrder)
	orders.Post("/:id/review", h.HandleSetUnderReview)
	orders.Post("/:id/approve", h.HandleApprove)
	orders.Post("/:id/reject", h.HandleReject)
}

// HandleListOrders lists orders, optionally filtered by ?status=.
func (h *AdminOrderHandler) HandleListOrders(c *fiber.Ctx) error {
	status := models.OrderStatus(c.Query("status"))
	orders, err := h.service.ListOrders(c.UserContext(), status)
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		if strings.Contains(err.Error(), "invalid order status") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrder retrieves a single order by its ID.
func (h *AdminOrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrder(c.UserContext(), orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		if errors.Is(err, gateway.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}

// HandleSetUnderReview moves a declared-paid order into review.
func (h *AdminOrderHandler) HandleSetUnderReview(c *fiber.Ctx) error {
	return h.applyCommand(c, models.SetUnderReview{})
}

// HandleApprove confirms an order under review.
func (h *AdminOrderHandler) HandleApprove(c *fiber.Ctx) error {
	return h.applyCommand(c, models.ApproveOrder{})
}

// HandleReject rejects an order with a reason.
func (h *AdminOrderHandler) HandleReject(c *fiber.Ctx) error {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing reject body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	return h.applyCommand(c, models.RejectOrder{Reason: req.Reason})
}

func (h *AdminOrderHandler) applyCommand(c *fiber.Ctx, cmd models.OrderCommand) error {
	orderID := c.Params("id")
	order, err := h.service.Apply(c.UserContext(), orderID, cmd)
	if err != nil {
		log.Printf("Error applying %T to order %s: %v", cmd, orderID, err)
		if errors.Is(err, gateway.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		if strings.Contains(err.Error(), "cannot move from") ||
			strings.Contains(err.Error(), "reject reason is required") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}
