package database

import (
	"shop-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
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
	); err != nil {
		return err
	}

	return nil
}
