package repositories

import (
	"fmt"
	"testing"

	"shop-app/controllers/idgen"
	"shop-app/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	idgen.Init()

	// Satu database in-memory per test, cache=shared supaya semua koneksi
	// pool gorm melihat schema yang sama.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserSession{},
		&models.Warehouse{},
		&models.Product{},
		&models.Variant{},
		&models.Inventory{},
		&models.StockEntry{},
		&models.StockEntryItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Cart{},
		&models.CartItem{},
	))

	return db
}

func createWarehouse(t *testing.T, db *gorm.DB, code string) models.Warehouse {
	t.Helper()
	whs := models.Warehouse{Name: "Warehouse " + code, Code: code, Status: models.WarehouseActive}
	require.NoError(t, db.Create(&whs).Error)
	return whs
}

func createVariant(t *testing.T, db *gorm.DB, sku string) models.Variant {
	t.Helper()
	product := models.Product{Name: "Product " + sku, SKU: "P-" + sku, Price: 1000}
	require.NoError(t, db.Create(&product).Error)
	variant := models.Variant{ProductID: product.ID, Size: "M", Color: "black", SKU: sku}
	require.NoError(t, db.Create(&variant).Error)
	return variant
}

func createInventory(t *testing.T, db *gorm.DB, warehouseID, variantID uint, onhand, reserved int) models.Inventory {
	t.Helper()
	inv := models.Inventory{
		WarehouseID: warehouseID,
		VariantID:   variantID,
		QtyOnhand:   onhand,
		QtyReserved: reserved,
	}
	require.NoError(t, db.Create(&inv).Error)
	return inv
}

func getInventory(t *testing.T, db *gorm.DB, warehouseID, variantID uint) models.Inventory {
	t.Helper()
	var inv models.Inventory
	require.NoError(t, db.Where("warehouse_id = ? AND variant_id = ?", warehouseID, variantID).First(&inv).Error)
	return inv
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Name: "Test User", Email: email, Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func requireInvariant(t *testing.T, db *gorm.DB) {
	t.Helper()
	var invs []models.Inventory
	require.NoError(t, db.Find(&invs).Error)
	for _, inv := range invs {
		require.GreaterOrEqual(t, inv.QtyReserved, 0,
			fmt.Sprintf("inventory %d: reserved negative", inv.ID))
		require.LessOrEqual(t, inv.QtyReserved, inv.QtyOnhand,
			fmt.Sprintf("inventory %d: reserved exceeds onhand", inv.ID))
	}
}
