package controllers

import (
	"shop-app/models"
	"shop-app/repositories"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type WarehouseController struct {
	DB *gorm.DB
}

func NewWarehouseController(DB *gorm.DB) *WarehouseController {
	return &WarehouseController{DB: DB}
}

type warehouseInput struct {
	Name   string `json:"name" validate:"required"`
	Code   string `json:"code" validate:"required"`
	Status string `json:"status"`
}

// CreateWarehouse membuat warehouse baru sekaligus ledger row kosong
// untuk semua variant yang sudah ada.
func (c *WarehouseController) CreateWarehouse(ctx *fiber.Ctx) error {
	var input warehouseInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	// Validasi input menggunakan validator
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	status := input.Status
	if status == "" {
		status = models.WarehouseActive
	}

	warehouse := models.Warehouse{
		Name:      input.Name,
		Code:      input.Code,
		Status:    status,
		CreatedBy: currentUserID(ctx),
	}

	if err := c.DB.Create(&warehouse).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create warehouse",
			"error":   err.Error(),
		})
	}

	invRepo := repositories.NewInventoryRepository(c.DB)
	if err := invRepo.EnsureForWarehouse(warehouse.ID); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create inventory rows",
			"error":   err.Error(),
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Warehouse created",
		"data":    warehouse,
	})
}

func (c *WarehouseController) GetWarehouses(ctx *fiber.Ctx) error {
	var warehouses []models.Warehouse
	if err := c.DB.Order("id ASC").Find(&warehouses).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"warehouses": warehouses},
	})
}

// UpdateWarehouse hanya mengubah nama/status, bukan menghapus.
func (c *WarehouseController) UpdateWarehouse(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid warehouse id"})
	}

	var warehouse models.Warehouse
	if err := c.DB.First(&warehouse, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Warehouse not found",
		})
	}

	var input struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.Name != "" {
		warehouse.Name = input.Name
	}
	if input.Status != "" {
		warehouse.Status = input.Status
	}
	warehouse.UpdatedBy = currentUserID(ctx)

	if err := c.DB.Save(&warehouse).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Warehouse updated",
		"data":    warehouse,
	})
}
