package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"resinshop/internal/gateway"
	"resinshop/internal/models"
	"resinshop/internal/repositories"
	"resinshop/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCheckoutAPI is a mock implementation of gateway.CheckoutAPI
type MockCheckoutAPI struct {
	mock.Mock
}

func (m *MockCheckoutAPI) SaveOrder(ctx context.Context, req gateway.SaveOrderRequest) (*models.Order, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockCheckoutAPI) DeclarePayment(ctx context.Context, req gateway.DeclarePaymentRequest) (*models.Order, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockCheckoutAPI) LookupOrder(ctx context.Context, code string) (*models.Order, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockCheckoutAPI) DeliveryQuote(ctx context.Context, location string) (*models.DeliveryQuote, error) {
	args := m.Called(location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeliveryQuote), args.Error(1)
}

// MockNotifier is a mock implementation of services.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PublishOwnerNotification(body []byte) error {
	args := m.Called(body)
	return args.Error(0)
}

const testFlatFee = 1000.0

// checkoutFixture wires a checkout service over a cart holding one item
// with snapshot price "1000.00" and quantity 3.
func checkoutFixture(t *testing.T, notifier services.Notifier) (*services.CheckoutService, *MockCheckoutAPI, *services.CartService, *repositories.MockReceiptRepository) {
	t.Helper()

	cartAPI := new(MockCartAPI)
	cartAPI.On("CreateCart").Return(&models.Cart{ID: "cart-1"}, nil).Once()
	cartAPI.On("AddItem", "cart-1", mock.Anything).
		Return(&models.CartItem{ID: "item-1", CartID: "cart-1", Quantity: 3, Price: "1000.00"}, nil).Once()

	cart := newCartService(cartAPI)
	_, err := cart.AddItem(context.Background(), "var-1", 3)
	assert.NoError(t, err)

	checkoutAPI := new(MockCheckoutAPI)
	receipts := repositories.NewMockReceiptRepository()
	service := services.NewCheckoutService(cart, checkoutAPI, receipts, notifier, testFlatFee)
	return service, checkoutAPI, cart, receipts
}

func TestCheckout_Enter_EmptyCartRedirects(t *testing.T) {
	cart := newCartService(new(MockCartAPI))
	service := services.NewCheckoutService(cart, new(MockCheckoutAPI), repositories.NewMockReceiptRepository(), nil, testFlatFee)

	err := service.Enter()

	assert.ErrorIs(t, err, services.ErrEmptyCart)
}

func TestCheckout_Quote_DeliveryFeePolicy(t *testing.T) {
	service, _, _, _ := checkoutFixture(t, nil)
	assert.NoError(t, service.Enter())
	service.AcknowledgeDisclaimer()

	// Inside the base zone delivery is free.
	fee, total, err := service.Quote(true)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, fee)
	assert.Equal(t, 3000.0, total)

	// Outside it the flat fee applies: subtotal 3000 + fee 1000 = 4000.
	fee, total, err = service.Quote(false)
	assert.NoError(t, err)
	assert.Equal(t, 1000.0, fee)
	assert.Equal(t, 4000.0, total)
	assert.Equal(t, services.StateQuoting, service.State())
}

func TestCheckout_Quote_RequiresDisclaimer(t *testing.T) {
	service, _, _, _ := checkoutFixture(t, nil)
	assert.NoError(t, service.Enter())

	_, _, err := service.Quote(false)

	assert.ErrorIs(t, err, services.ErrDisclaimerRequired)
}

func TestCheckout_SaveOrder(t *testing.T) {
	service, checkoutAPI, cart, _ := checkoutFixture(t, nil)
	assert.NoError(t, service.Enter())
	service.AcknowledgeDisclaimer()
	_, _, err := service.Quote(false)
	assert.NoError(t, err)

	fee := testFlatFee
	checkoutAPI.On("SaveOrder", gateway.SaveOrderRequest{
		CartID:       "cart-1",
		CustomerName: "Ada",
		Location:     "Ikeja, Lagos",
		DeliveryFee:  &fee,
	}).Return(&models.Order{
		Code:     "RS-1001",
		Status:   models.StatusSaved,
		Subtotal: 3000,
		Total:    4000,
	}, nil).Once()

	order, err := service.SaveOrder(context.Background(), "Ada", "Ikeja, Lagos")

	assert.NoError(t, err)
	assert.Equal(t, "RS-1001", order.Code)
	assert.Equal(t, models.StatusSaved, order.Status)
	assert.Equal(t, services.StateSaved, service.State())
	// The server consumed the cart; locally it is gone too.
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, "", cart.CartID())
	checkoutAPI.AssertExpectations(t)
}

func TestCheckout_SaveOrder_FailureKeepsCart(t *testing.T) {
	service, checkoutAPI, cart, _ := checkoutFixture(t, nil)
	assert.NoError(t, service.Enter())
	service.AcknowledgeDisclaimer()

	checkoutAPI.On("SaveOrder", mock.Anything).
		Return(nil, fmt.Errorf("backend unavailable")).Once()

	_, err := service.SaveOrder(context.Background(), "Ada", "Ikeja, Lagos")

	assert.Error(t, err)
	assert.False(t, cart.IsEmpty())
	checkoutAPI.AssertExpectations(t)
}

func TestCheckout_DeclarePayment_RequiresContactMethod(t *testing.T) {
	service, checkoutAPI, _, _ := checkoutFixture(t, nil)
	assert.NoError(t, service.Enter())
	service.AcknowledgeDisclaimer()

	_, err := service.DeclarePayment(context.Background(), services.ContactInfo{Name: "Ada"}, "Lagos")

	assert.ErrorIs(t, err, services.ErrNoContactMethod)
	// Precondition failures issue no request.
	checkoutAPI.AssertNotCalled(t, "DeclarePayment")
}

func TestCheckout_DeclareAndConfirmFlow(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("PublishOwnerNotification", mock.Anything).Return(nil).Once()

	service, checkoutAPI, cart, receipts := checkoutFixture(t, notifier)
	assert.NoError(t, service.Enter())
	service.AcknowledgeDisclaimer()
	_, _, err := service.Quote(false)
	assert.NoError(t, err)

	fee := testFlatFee
	checkoutAPI.On("DeclarePayment", mock.Anything).Return(&models.Order{
		Code:         "RS-1002",
		Status:       models.StatusDeclaredPaid,
		CustomerName: "Ada",
		Phone:        "+2348000000000",
		Subtotal:     3000,
		DeliveryFee:  &fee,
		Total:        4000,
		BankName:     "First Bank",
	}, nil).Once()

	order, err := service.DeclarePayment(context.Background(), services.ContactInfo{
		Name:  "Ada",
		Phone: "+2348000000000",
	}, "Ikeja, Lagos")
	assert.NoError(t, err)
	assert.Equal(t, "First Bank", order.BankName)
	assert.Equal(t, services.StateAwaitingConfirmation, service.State())
	// The cart survives until the buyer confirms.
	assert.False(t, cart.IsEmpty())

	receipt, err := service.ConfirmDeclared()

	assert.NoError(t, err)
	assert.Equal(t, "RS-1002", receipt.OrderCode)
	assert.Equal(t, 4000.0, receipt.Total)
	assert.Equal(t, services.StateDeclared, service.State())
	assert.True(t, cart.IsEmpty())

	stored, err := receipts.GetByOrderCode("RS-1002")
	assert.NoError(t, err)
	assert.Equal(t, "Ada", stored.CustomerName)

	notifier.AssertExpectations(t)
	checkoutAPI.AssertExpectations(t)
}

func TestCheckout_ConfirmDeclared_NotifierFailureDoesNotFailOrder(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("PublishOwnerNotification", mock.Anything).
		Return(fmt.Errorf("broker down")).Once()

	service, checkoutAPI, _, _ := checkoutFixture(t, notifier)
	assert.NoError(t, service.Enter())
	service.AcknowledgeDisclaimer()

	checkoutAPI.On("DeclarePayment", mock.Anything).Return(&models.Order{
		Code:   "RS-1003",
		Status: models.StatusDeclaredPaid,
		Total:  3000,
	}, nil).Once()

	_, err := service.DeclarePayment(context.Background(), services.ContactInfo{
		Name:  "Ada",
		Email: "ada@example.com",
	}, "Lagos")
	assert.NoError(t, err)

	receipt, err := service.ConfirmDeclared()

	// The notification is best-effort; the order still completes.
	assert.NoError(t, err)
	assert.Equal(t, "RS-1003", receipt.OrderCode)
	assert.Equal(t, services.StateDeclared, service.State())
	notifier.AssertExpectations(t)
}

func TestCheckout_ConfirmDeclared_WithoutPendingOrder(t *testing.T) {
	service, _, _, _ := checkoutFixture(t, nil)

	_, err := service.ConfirmDeclared()

	assert.ErrorIs(t, err, services.ErrNothingToConfirm)
}

func TestCheckout_ConcurrentSessionAccessIsSafe(t *testing.T) {
	// One shared session is hit from concurrent handler goroutines; run
	// with -race to verify the session fields are properly guarded.
	service, _, _, _ := checkoutFixture(t, nil)
	assert.NoError(t, service.Enter())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			service.AcknowledgeDisclaimer()
			_ = service.State()
			_, _, err := service.Quote(false)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, services.StateQuoting, service.State())
}

func TestCheckout_ReentryAfterTerminalStateRedirects(t *testing.T) {
	service, checkoutAPI, _, _ := checkoutFixture(t, nil)
	assert.NoError(t, service.Enter())
	service.AcknowledgeDisclaimer()

	checkoutAPI.On("SaveOrder", mock.Anything).
		Return(&models.Order{Code: "RS-1004", Status: models.StatusSaved}, nil).Once()
	_, err := service.SaveOrder(context.Background(), "Ada", "Lagos")
	assert.NoError(t, err)

	// The cart is empty after the terminal state, so re-entry redirects.
	assert.ErrorIs(t, service.Enter(), services.ErrEmptyCart)
}
