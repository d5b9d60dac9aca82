package database

import (
	"fmt"

	"shop-app/models"
	"shop-app/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunSeeders mengisi data awal: admin user dan warehouse default.
func RunSeeders(db *gorm.DB) {
	SeedAdminUser(db)
	SeedWarehouses(db)
}

func SeedAdminUser(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		fmt.Println("Failed to hash admin password:", err)
		return
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    "admin@shop.local",
		Password: string(hashed),
		Role:     "admin",
	}

	if err := db.Create(&admin).Error; err != nil {
		fmt.Println("Failed to seed admin user:", err)
	}
}

func SeedWarehouses(db *gorm.DB) {
	var count int64
	db.Model(&models.Warehouse{}).Count(&count)
	if count > 0 {
		return
	}

	warehouses := []models.Warehouse{
		{Name: "Main Warehouse", Code: "WH01", Status: models.WarehouseActive},
		{Name: "Secondary Warehouse", Code: "WH02", Status: models.WarehouseActive},
	}

	invRepo := repositories.NewInventoryRepository(db)
	for _, whs := range warehouses {
		if err := db.Create(&whs).Error; err != nil {
			fmt.Println("Failed to seed warehouse:", err)
			continue
		}
		// Buat ledger row untuk semua variant yang sudah ada
		if err := invRepo.EnsureForWarehouse(whs.ID); err != nil {
			fmt.Println("Failed to create inventory rows for warehouse:", err)
		}
	}
}
