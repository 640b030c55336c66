package repositories_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resinshop/internal/models"
	"resinshop/internal/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "local.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.SessionEntry{}, &models.Receipt{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func TestGORMSessionRepository_GetWithoutValue(t *testing.T) {
	repo := repositories.NewGORMSessionRepository(newTestDB(t))

	id, err := repo.GetCartID()

	assert.NoError(t, err)
	assert.Equal(t, "", id)
}

func TestGORMSessionRepository_SetOverwriteGetClear(t *testing.T) {
	repo := repositories.NewGORMSessionRepository(newTestDB(t))

	assert.NoError(t, repo.SetCartID("cart-1"))

	id, err := repo.GetCartID()
	assert.NoError(t, err)
	assert.Equal(t, "cart-1", id)

	// A second set must overwrite through the upsert, not fail or
	// duplicate.
	assert.NoError(t, repo.SetCartID("cart-2"))

	id, err = repo.GetCartID()
	assert.NoError(t, err)
	assert.Equal(t, "cart-2", id)

	assert.NoError(t, repo.ClearCartID())

	id, err = repo.GetCartID()
	assert.NoError(t, err)
	assert.Equal(t, "", id)
}

func TestGORMSessionRepository_ClearWithoutValue(t *testing.T) {
	repo := repositories.NewGORMSessionRepository(newTestDB(t))

	assert.NoError(t, repo.ClearCartID())
}

func TestGORMReceiptRepository_CreateAndGetByOrderCode(t *testing.T) {
	repo := repositories.NewGORMReceiptRepository(newTestDB(t))

	receipt := &models.Receipt{
		OrderCode:    "RS-1001",
		CustomerName: "Ada",
		Contact:      "+2348000000000",
		Subtotal:     3000,
		DeliveryFee:  1000,
		Total:        4000,
		IssuedAt:     time.Now(),
	}
	assert.NoError(t, repo.Create(receipt))
	assert.NotEmpty(t, receipt.ID)

	stored, err := repo.GetByOrderCode("RS-1001")
	assert.NoError(t, err)
	assert.Equal(t, "Ada", stored.CustomerName)
	assert.Equal(t, 4000.0, stored.Total)
}

func TestGORMReceiptRepository_GetByOrderCodeNotFound(t *testing.T) {
	repo := repositories.NewGORMReceiptRepository(newTestDB(t))

	_, err := repo.GetByOrderCode("RS-0000")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGORMReceiptRepository_GetAllNewestFirst(t *testing.T) {
	repo := repositories.NewGORMReceiptRepository(newTestDB(t))

	older := &models.Receipt{OrderCode: "RS-1001", IssuedAt: time.Now().Add(-time.Hour)}
	newer := &models.Receipt{OrderCode: "RS-1002", IssuedAt: time.Now()}
	assert.NoError(t, repo.Create(older))
	assert.NoError(t, repo.Create(newer))

	receipts, err := repo.GetAll()

	assert.NoError(t, err)
	assert.Len(t, receipts, 2)
	assert.Equal(t, "RS-1002", receipts[0].OrderCode)
}
