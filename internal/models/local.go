package models

import (
	"time"

	"gorm.io/gorm"
)

// SessionEntry is a locally persisted key-value pair. The only key in
// regular use is the active cart id. Key must stay the sole primary
// key: the cart-id upsert conflicts on it.
type SessionEntry struct {
	Key       string `gorm:"primaryKey;type:varchar(64)"`
	Value     string `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Receipt is the locally stored record of a declared payment. It is a
// convenience artifact; the order itself lives on the server.
type Receipt struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderCode    string    `json:"order_code" gorm:"index;type:varchar(32)"`
	CustomerName string    `json:"customer_name" gorm:"type:varchar(150)"`
	Contact      string    `json:"contact" gorm:"type:varchar(150)"`
	Subtotal     float64   `json:"subtotal"`
	DeliveryFee  float64   `json:"delivery_fee"`
	Total        float64   `json:"total"`
	IssuedAt     time.Time `json:"issued_at"`
	gorm.Model
}
