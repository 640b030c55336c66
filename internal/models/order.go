package models

import "time"

// OrderStatus is the lifecycle state of an order. The server is
// authoritative; the client only gates which admin actions it offers.
type OrderStatus string

const (
	StatusSaved        OrderStatus = "SAVED"
	StatusDeclaredPaid OrderStatus = "DECLARED_PAID"
	StatusUnderReview  OrderStatus = "UNDER_REVIEW"
	StatusConfirmed    OrderStatus = "CONFIRMED"
	StatusRejected     OrderStatus = "REJECTED"
)

// orderTransitions lists the admin-triggered moves. SAVED, CONFIRMED
// and REJECTED are terminal for the actions modeled here.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusDeclaredPaid: {StatusUnderReview, StatusRejected},
	StatusUnderReview:  {StatusConfirmed, StatusRejected},
}

// Valid reports whether s is a known status value.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusSaved, StatusDeclaredPaid, StatusUnderReview, StatusConfirmed, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether an admin may move an order from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order represents a customer order as served by the backend API.
type Order struct {
	ID               string      `json:"id"`
	Code             string      `json:"code"`
	Status           OrderStatus `json:"status"`
	CustomerName     string      `json:"customer_name"`
	Phone            string      `json:"phone,omitempty"`
	Email            string      `json:"email,omitempty"`
	Whatsapp         string      `json:"whatsapp,omitempty"`
	Items            []CartItem  `json:"items,omitempty"`
	Subtotal         float64     `json:"subtotal"`
	DeliveryFee      *float64    `json:"delivery_fee,omitempty"` // nil until computed
	Total            float64     `json:"total"`
	Location         string      `json:"location,omitempty"`
	DeliveryZoneName string      `json:"delivery_zone_name,omitempty"`
	ManualQuote      bool        `json:"manual_quote"`
	BankName         string      `json:"bank_name,omitempty"`
	BankAccountNo    string      `json:"bank_account_no,omitempty"`
	BankAccountName  string      `json:"bank_account_name,omitempty"`
	RejectReason     string      `json:"reject_reason,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// OrderCommand is an admin action on an order. Each command maps to its
// own one-way endpoint call; there is no batch or rollback operation.
type OrderCommand interface {
	// TargetStatus is the status the order ends in when the command succeeds.
	TargetStatus() OrderStatus
}

// SetUnderReview moves a declared-paid order into review.
type SetUnderReview struct{}

func (SetUnderReview) TargetStatus() OrderStatus { return StatusUnderReview }

// ApproveOrder confirms an order under review.
type ApproveOrder struct{}

func (ApproveOrder) TargetStatus() OrderStatus { return StatusConfirmed }

// RejectOrder rejects an order with a reason shown to the buyer.
type RejectOrder struct {
	Reason string
}

func (RejectOrder) TargetStatus() OrderStatus { return StatusRejected }
