package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resinshop/internal/models"
)

// GORMReceiptRepository is a GORM implementation of ReceiptRepository.
type GORMReceiptRepository struct {
	db *gorm.DB
}

// NewGORMReceiptRepository creates a new instance of GORMReceiptRepository.
func NewGORMReceiptRepository(db *gorm.DB) *GORMReceiptRepository {
	return &GORMReceiptRepository{
		db: db,
	}
}

// Create stores a receipt, generating an id when none is set.
func (r *GORMReceiptRepository) Create(receipt *models.Receipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if err := r.db.Create(receipt).Error; err != nil {
		return fmt.Errorf("failed to create receipt: %w", err)
	}
	return nil
}

// GetAll retrieves all stored receipts, newest first.
func (r *GORMReceiptRepository) GetAll() ([]models.Receipt, error) {
	var receipts []models.Receipt
	if err := r.db.Order("issued_at desc").Find(&receipts).Error; err != nil {
		return nil, fmt.Errorf("failed to get all receipts: %w", err)
	}
	return receipts, nil
}

// GetByOrderCode retrieves the receipt stored for an order code.
func (r *GORMReceiptRepository) GetByOrderCode(code string) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := r.db.First(&receipt, "order_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("receipt for order %s not found", code)
		}
		return nil, fmt.Errorf("failed to get receipt for order %s: %w", code, err)
	}
	return &receipt, nil
}
