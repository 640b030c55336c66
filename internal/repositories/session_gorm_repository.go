package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resinshop/internal/models"
)

const cartIDKey = "cart_id"

// GORMSessionRepository is a GORM implementation of SessionRepository
// backed by the local sqlite database.
type GORMSessionRepository struct {
	db *gorm.DB
}

// NewGORMSessionRepository creates a new instance of GORMSessionRepository.
func NewGORMSessionRepository(db *gorm.DB) *GORMSessionRepository {
	return &GORMSessionRepository{
		db: db,
	}
}

// GetCartID returns the persisted cart id, or "" when none is held.
func (r *GORMSessionRepository) GetCartID() (string, error) {
	var entry models.SessionEntry
	if err := r.db.First(&entry, "key = ?", cartIDKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read cart id: %w", err)
	}
	return entry.Value, nil
}

// SetCartID stores the cart id, replacing any previous value.
func (r *GORMSessionRepository) SetCartID(id string) error {
	entry := models.SessionEntry{Key: cartIDKey, Value: id}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to store cart id: %w", err)
	}
	return nil
}

// ClearCartID forgets the cart id. Clearing an absent id is not an error.
func (r *GORMSessionRepository) ClearCartID() error {
	if err := r.db.Delete(&models.SessionEntry{}, "key = ?", cartIDKey).Error; err != nil {
		return fmt.Errorf("failed to clear cart id: %w", err)
	}
	return nil
}
