package models

// ZoneMatcher tells how a delivery zone matches a buyer's location.
type ZoneMatcher string

const (
	MatchCity   ZoneMatcher = "CITY"
	MatchState  ZoneMatcher = "STATE"
	MatchCustom ZoneMatcher = "CUSTOM"
)

// DeliveryZone is an admin-configured fee rule. Zones are owned by the
// server; the client reads them for display and quoting only.
type DeliveryZone struct {
	ID           string      `json:"id" validate:"omitempty,uuid"`
	Name         string      `json:"name" validate:"required,min=2,max=100"`
	MatcherType  ZoneMatcher `json:"matcher_type" validate:"required,oneof=CITY STATE CUSTOM"`
	MatcherValue string      `json:"matcher_value" validate:"required,max=150"`
	Fee          float64     `json:"fee" validate:"gte=0"`
	Priority     int         `json:"priority" validate:"gte=0"`
	IsActive     bool        `json:"is_active"`
}

// DeliveryQuote is the server's answer to a quote request. ManualQuote
// means no zone matched and the fee must be settled out of band.
type DeliveryQuote struct {
	Fee         float64 `json:"fee"`
	ZoneName    string  `json:"zone_name,omitempty"`
	ManualQuote bool    `json:"manual_quote"`
}

// AppConfig is the storefront's singleton settings record.
type AppConfig struct {
	BankName        string `json:"bank_name" validate:"required,max=100"`
	BankAccountNo   string `json:"bank_account_no" validate:"required,max=32"`
	BankAccountName string `json:"bank_account_name" validate:"required,max=100"`
	WhatsappLink    string `json:"whatsapp_link" validate:"omitempty,url"`
	CheckoutNote    string `json:"checkout_note" validate:"omitempty,max=1000"`
}
