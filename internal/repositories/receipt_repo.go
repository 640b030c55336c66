package repositories

import "resinshop/internal/models"

// ReceiptRepository defines the interface for locally stored receipts.
type ReceiptRepository interface {
	Create(receipt *models.Receipt) error
	GetAll() ([]models.Receipt, error)
	GetByOrderCode(code string) (*models.Receipt, error)
}
