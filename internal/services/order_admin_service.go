package services

import (
	"context"
	"fmt"
	"strings"

	"resinshop/internal/gateway"
	"resinshop/internal/models"
)

// OrderAdminService handles the admin side of the order lifecycle. The
// server is authoritative over transitions; this service only refuses
// commands the lifecycle does not allow, so the admin UI never offers a
// dead-end action.
type OrderAdminService struct {
	api gateway.AdminOrderAPI
}

// NewOrderAdminService creates a new OrderAdminService.
func NewOrderAdminService(api gateway.AdminOrderAPI) *OrderAdminService {
	return &OrderAdminService{
		api: api,
	}
}

// ListOrders retrieves orders, optionally filtered by status.
func (s *OrderAdminService) ListOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("invalid order status: %s", status)
	}
	return s.api.ListOrders(ctx, status)
}

// GetOrder retrieves a single order by its ID.
func (s *OrderAdminService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return s.api.GetOrder(ctx, orderID)
}

// Apply runs one admin command against an order. The current status is
// fetched first and checked against the transition table; each command
// then dispatches to its own endpoint.
func (s *OrderAdminService) Apply(ctx context.Context, orderID string, cmd models.OrderCommand) (*models.Order, error) {
	order, err := s.api.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order %s: %w", orderID, err)
	}

	target := cmd.TargetStatus()
	if !order.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("order %s cannot move from %s to %s", orderID, order.Status, target)
	}

	switch c := cmd.(type) {
	case models.SetUnderReview:
		return s.api.MarkUnderReview(ctx, orderID)
	case models.ApproveOrder:
		return s.api.ApproveOrder(ctx, orderID)
	case models.RejectOrder:
		if strings.TrimSpace(c.Reason) == "" {
			return nil, fmt.Errorf("a reject reason is required")
		}
		return s.api.RejectOrder(ctx, orderID, c.Reason)
	default:
		return nil, fmt.Errorf("unsupported order command %T", cmd)
	}
}
