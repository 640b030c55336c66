package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"resinshop/internal/models"
)

// MockReceiptRepository is an in-memory implementation of ReceiptRepository.
type MockReceiptRepository struct {
	mu       sync.RWMutex
	receipts []models.Receipt
}

// NewMockReceiptRepository creates a new instance of MockReceiptRepository.
func NewMockReceiptRepository() *MockReceiptRepository {
	return &MockReceiptRepository{}
}

// Create stores a receipt, generating an id when none is set.
func (r *MockReceiptRepository) Create(receipt *models.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	r.receipts = append(r.receipts, *receipt)
	return nil
}

// GetAll returns all stored receipts.
func (r *MockReceiptRepository) GetAll() ([]models.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Receipt, len(r.receipts))
	copy(out, r.receipts)
	return out, nil
}

// GetByOrderCode returns the receipt stored for an order code.
func (r *MockReceiptRepository) GetByOrderCode(code string) (*models.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.receipts {
		if r.receipts[i].OrderCode == code {
			receipt := r.receipts[i]
			return &receipt, nil
		}
	}
	return nil, fmt.Errorf("receipt for order %s not found", code)
}
