package repositories

import "sync"

// MockSessionRepository is an in-memory implementation of SessionRepository.
type MockSessionRepository struct {
	mu     sync.RWMutex
	cartID string
}

// NewMockSessionRepository creates a new instance of MockSessionRepository.
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

// GetCartID returns the held cart id, or "" when none is set.
func (r *MockSessionRepository) GetCartID() (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cartID, nil
}

// SetCartID stores the cart id.
func (r *MockSessionRepository) SetCartID(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cartID = id
	return nil
}

// ClearCartID forgets the cart id.
func (r *MockSessionRepository) ClearCartID() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cartID = ""
	return nil
}
