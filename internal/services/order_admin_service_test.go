package services_test

import (
	"context"
	"testing"

	"resinshop/internal/models"
	"resinshop/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAdminOrderAPI is a mock implementation of gateway.AdminOrderAPI
type MockAdminOrderAPI struct {
	mock.Mock
}

func (m *MockAdminOrderAPI) ListOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockAdminOrderAPI) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockAdminOrderAPI) MarkUnderReview(ctx context.Context, orderID string) (*models.Order, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockAdminOrderAPI) ApproveOrder(ctx context.Context, orderID string) (*models.Order, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockAdminOrderAPI) RejectOrder(ctx context.Context, orderID, reason string) (*models.Order, error) {
	args := m.Called(orderID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func TestOrderAdminService_Apply_SetUnderReview(t *testing.T) {
	mockAPI := new(MockAdminOrderAPI)
	service := services.NewOrderAdminService(mockAPI)

	mockAPI.On("GetOrder", "ord-1").
		Return(&models.Order{ID: "ord-1", Status: models.StatusDeclaredPaid}, nil).Once()
	mockAPI.On("MarkUnderReview", "ord-1").
		Return(&models.Order{ID: "ord-1", Status: models.StatusUnderReview}, nil).Once()

	order, err := service.Apply(context.Background(), "ord-1", models.SetUnderReview{})

	assert.NoError(t, err)
	assert.Equal(t, models.StatusUnderReview, order.Status)
	mockAPI.AssertExpectations(t)
}

func TestOrderAdminService_Apply_RejectsInvalidTransition(t *testing.T) {
	mockAPI := new(MockAdminOrderAPI)
	service := services.NewOrderAdminService(mockAPI)

	// A saved order has not declared payment; approval is not offered.
	mockAPI.On("GetOrder", "ord-2").
		Return(&models.Order{ID: "ord-2", Status: models.StatusSaved}, nil).Once()

	_, err := service.Apply(context.Background(), "ord-2", models.ApproveOrder{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot move from SAVED to CONFIRMED")
	mockAPI.AssertNotCalled(t, "ApproveOrder")
	mockAPI.AssertExpectations(t)
}

func TestOrderAdminService_Apply_RejectRequiresReason(t *testing.T) {
	mockAPI := new(MockAdminOrderAPI)
	service := services.NewOrderAdminService(mockAPI)

	mockAPI.On("GetOrder", "ord-3").
		Return(&models.Order{ID: "ord-3", Status: models.StatusUnderReview}, nil).Once()

	_, err := service.Apply(context.Background(), "ord-3", models.RejectOrder{Reason: "  "})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reject reason is required")
	mockAPI.AssertNotCalled(t, "RejectOrder")
}

func TestOrderAdminService_Apply_RejectWithReason(t *testing.T) {
	mockAPI := new(MockAdminOrderAPI)
	service := services.NewOrderAdminService(mockAPI)

	mockAPI.On("GetOrder", "ord-4").
		Return(&models.Order{ID: "ord-4", Status: models.StatusDeclaredPaid}, nil).Once()
	mockAPI.On("RejectOrder", "ord-4", "transfer never arrived").
		Return(&models.Order{ID: "ord-4", Status: models.StatusRejected, RejectReason: "transfer never arrived"}, nil).Once()

	order, err := service.Apply(context.Background(), "ord-4", models.RejectOrder{Reason: "transfer never arrived"})

	assert.NoError(t, err)
	assert.Equal(t, models.StatusRejected, order.Status)
	mockAPI.AssertExpectations(t)
}

func TestOrderAdminService_ListOrders_ValidatesStatus(t *testing.T) {
	mockAPI := new(MockAdminOrderAPI)
	service := services.NewOrderAdminService(mockAPI)

	_, err := service.ListOrders(context.Background(), models.OrderStatus("SHIPPED"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order status")
	mockAPI.AssertNotCalled(t, "ListOrders")
}
