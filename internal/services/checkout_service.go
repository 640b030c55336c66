package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"resinshop/internal/gateway"
	"resinshop/internal/models"
	"resinshop/internal/repositories"
)

// CheckoutState is the client-local state of one checkout session.
type CheckoutState string

const (
	StateIdle                 CheckoutState = "idle"
	StateQuoting              CheckoutState = "quoting"
	StateSubmitting           CheckoutState = "submitting"
	StateSaved                CheckoutState = "saved"
	StateAwaitingConfirmation CheckoutState = "awaiting_confirmation"
	StateDeclared             CheckoutState = "declared"
)

// Checkout precondition failures. These are checked before any network
// call and issue no request.
var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrDisclaimerRequired = errors.New("delivery fee disclaimer must be acknowledged")
	ErrNoContactMethod    = errors.New("at least one of phone, email or whatsapp is required")
	ErrNothingToConfirm   = errors.New("no declared payment awaiting confirmation")
)

// ContactInfo is the buyer-supplied contact block.
type ContactInfo struct {
	Name     string `json:"name" validate:"required,min=2,max=150"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Email    string `json:"email" validate:"omitempty,email"`
	Whatsapp string `json:"whatsapp" validate:"omitempty,max=64"`
}

// HasReachableChannel reports whether the buyer gave any way to reach
// them about the payment.
func (c ContactInfo) HasReachableChannel() bool {
	return strings.TrimSpace(c.Phone) != "" ||
		strings.TrimSpace(c.Email) != "" ||
		strings.TrimSpace(c.Whatsapp) != ""
}

// Notifier publishes owner-facing notifications. Implemented by
// pkg/rabbitmq.Client.
type Notifier interface {
	PublishOwnerNotification(body []byte) error
}

// CheckoutService runs the two-phase order flow: quote the delivery
// fee, then either save the order or declare a bank-transfer payment.
// A declared payment waits for an explicit confirmation before the
// session finishes.
type CheckoutService struct {
	cart     *CartService
	api      gateway.CheckoutAPI
	receipts repositories.ReceiptRepository
	notifier Notifier

	// flatFee applies to deliveries outside the base zone; inside it
	// delivery is free.
	flatFee float64

	// mu guards the session fields below. Handlers hit the one shared
	// session from concurrent requests.
	mu           sync.Mutex
	state        CheckoutState
	disclaimerOK bool
	fee          *float64
	pending      *models.Order
}

// NewCheckoutService creates a CheckoutService. notifier may be nil, in
// which case owner notifications are skipped.
func NewCheckoutService(cart *CartService, api gateway.CheckoutAPI, receipts repositories.ReceiptRepository, notifier Notifier, flatFee float64) *CheckoutService {
	return &CheckoutService{
		cart:     cart,
		api:      api,
		receipts: receipts,
		notifier: notifier,
		flatFee:  flatFee,
		state:    StateIdle,
	}
}

// State returns the current session state.
func (s *CheckoutService) State() CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Enter guards checkout entry: an empty cart (including re-entry after
// a terminal state) means there is nothing to check out, and the caller
// should send the user back to the cart page.
func (s *CheckoutService) Enter() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.IsEmpty() {
		return ErrEmptyCart
	}
	s.state = StateIdle
	s.disclaimerOK = false
	s.fee = nil
	s.pending = nil
	return nil
}

// AcknowledgeDisclaimer records that the buyer accepted the delivery
// fee disclaimer. Required before quoting or submitting.
func (s *CheckoutService) AcknowledgeDisclaimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disclaimerOK = true
}

// Quote computes the delivery fee from the within-base-zone flag: free
// inside the base zone, the flat fee outside it. Returns fee and total.
func (s *CheckoutService) Quote(withinBaseZone bool) (fee float64, total float64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.IsEmpty() {
		return 0, 0, ErrEmptyCart
	}
	if !s.disclaimerOK {
		return 0, 0, ErrDisclaimerRequired
	}
	if !withinBaseZone {
		fee = s.flatFee
	}
	s.fee = &fee
	s.state = StateQuoting
	return fee, s.cart.Subtotal() + fee, nil
}

// QuoteByLocation asks the server to match the location against the
// configured delivery zones, for display alongside the flat policy.
func (s *CheckoutService) QuoteByLocation(ctx context.Context, location string) (*models.DeliveryQuote, error) {
	quote, err := s.api.DeliveryQuote(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to quote location %q: %w", location, err)
	}
	return quote, nil
}

// SaveOrder submits the cart with just a location. On success the cart
// is consumed server-side and cleared locally; the session is terminal.
func (s *CheckoutService) SaveOrder(ctx context.Context, customerName, location string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if !s.disclaimerOK {
		return nil, ErrDisclaimerRequired
	}

	s.state = StateSubmitting
	order, err := s.api.SaveOrder(ctx, gateway.SaveOrderRequest{
		CartID:       s.cart.CartID(),
		CustomerName: customerName,
		Location:     location,
		DeliveryFee:  s.fee,
	})
	if err != nil {
		s.state = StateQuoting
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.cart.Reset()
	s.state = StateSaved
	return order, nil
}

// DeclarePayment submits the cart with full contact info and declares a
// bank transfer. The returned order carries the bank details; the
// session then waits for ConfirmDeclared.
func (s *CheckoutService) DeclarePayment(ctx context.Context, contact ContactInfo, location string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if !s.disclaimerOK {
		return nil, ErrDisclaimerRequired
	}
	if !contact.HasReachableChannel() {
		return nil, ErrNoContactMethod
	}

	s.state = StateSubmitting
	order, err := s.api.DeclarePayment(ctx, gateway.DeclarePaymentRequest{
		CartID:       s.cart.CartID(),
		CustomerName: contact.Name,
		Phone:        contact.Phone,
		Email:        contact.Email,
		Whatsapp:     contact.Whatsapp,
		Location:     location,
		DeliveryFee:  s.fee,
	})
	if err != nil {
		s.state = StateQuoting
		return nil, fmt.Errorf("failed to declare payment: %w", err)
	}

	s.pending = order
	s.state = StateAwaitingConfirmation
	return order, nil
}

// ConfirmDeclared finalizes a declared payment: the cart is cleared, a
// receipt is recorded locally, and the owner is notified through the
// message queue. The notification is best-effort and must never fail
// the order.
func (s *CheckoutService) ConfirmDeclared() (*models.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingConfirmation || s.pending == nil {
		return nil, ErrNothingToConfirm
	}
	order := s.pending

	s.cart.Reset()

	var fee float64
	if order.DeliveryFee != nil {
		fee = *order.DeliveryFee
	}
	receipt := &models.Receipt{
		ID:           uuid.New().String(),
		OrderCode:    order.Code,
		CustomerName: order.CustomerName,
		Contact:      firstContact(order),
		Subtotal:     order.Subtotal,
		DeliveryFee:  fee,
		Total:        order.Total,
		IssuedAt:     time.Now(),
	}
	if err := s.receipts.Create(receipt); err != nil {
		// The order is already declared on the server; losing the
		// local receipt copy is not worth failing the flow.
		log.Printf("Failed to store receipt for order %s: %v", order.Code, err)
	}

	s.notifyOwner(order)

	s.pending = nil
	s.state = StateDeclared
	return receipt, nil
}

// notifyOwner dispatches the declared-payment notification. Failures
// are logged and swallowed.
func (s *CheckoutService) notifyOwner(order *models.Order) {
	if s.notifier == nil {
		log.Println("Notifier is not configured. Skipping owner notification.")
		return
	}
	payload := map[string]interface{}{
		"event":      "order.payment_declared",
		"order_code": order.Code,
		"customer":   order.CustomerName,
		"contact":    firstContact(order),
		"total":      order.Total,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal owner notification for order %s: %v", order.Code, err)
		return
	}
	if err := s.notifier.PublishOwnerNotification(body); err != nil {
		log.Printf("Warning: Failed to publish owner notification for order %s: %v", order.Code, err)
	}
}

// firstContact returns the first reachable contact channel on an order.
func firstContact(order *models.Order) string {
	switch {
	case order.Phone != "":
		return order.Phone
	case order.Whatsapp != "":
		return order.Whatsapp
	case order.Email != "":
		return order.Email
	}
	return ""
}

// LookupOrder fetches an order by its public code.
func (s *CheckoutService) LookupOrder(ctx context.Context, code string) (*models.Order, error) {
	order, err := s.api.LookupOrder(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up order %s: %w", code, err)
	}
	return order, nil
}
