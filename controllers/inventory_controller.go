package controllers

import (
	"fmt"
	"net/http"

	"shop-app/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type InventoryController struct {
	DB *gorm.DB
}

func NewInventoryController(DB *gorm.DB) *InventoryController {
	return &InventoryController{DB: DB}
}

func (c *InventoryController) GetInventory(ctx *fiber.Ctx) error {
	inventory_repo := repositories.NewInventoryRepository(c.DB)
	ledger, err := inventory_repo.GetLedger()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"inventories": ledger}})
}

// GetAvailable mengembalikan stok available (onhand - reserved)
// untuk satu (warehouse, variant).
func (c *InventoryController) GetAvailable(ctx *fiber.Ctx) error {
	warehouseID := ctx.QueryInt("warehouse_id")
	variantID := ctx.QueryInt("variant_id")
	if warehouseID <= 0 || variantID <= 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "warehouse_id and variant_id are required",
		})
	}

	inventory_repo := repositories.NewInventoryRepository(c.DB)
	available, err := inventory_repo.GetAvailable(uint(warehouseID), uint(variantID))
	if err != nil {
		return respondRepoError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"warehouse_id": warehouseID,
			"variant_id":   variantID,
			"available":    available,
		},
	})
}

// Handler untuk generate dan kirim file Excel
func (c *InventoryController) ExportExcel(ctx *fiber.Ctx) error {
	inventory_repo := repositories.NewInventoryRepository(c.DB)
	ledger, err := inventory_repo.GetLedger()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// Buat file Excel baru
	f := excelize.NewFile()
	sheet := "Sheet1"

	// Buat header
	f.SetCellValue(sheet, "A1", "Whs Code")
	f.SetCellValue(sheet, "B1", "Whs Name")
	f.SetCellValue(sheet, "C1", "Product")
	f.SetCellValue(sheet, "D1", "Variant SKU")
	f.SetCellValue(sheet, "E1", "Size")
	f.SetCellValue(sheet, "F1", "Color")
	f.SetCellValue(sheet, "G1", "Qty Onhand")
	f.SetCellValue(sheet, "H1", "Qty Reserved")
	f.SetCellValue(sheet, "I1", "Qty Available")

	// Isi data ke dalam sheet
	for i, row := range ledger {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), row.WhsCode)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), row.WhsName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), row.ProductName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), row.VariantSku)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", i+2), row.Size)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", i+2), row.Color)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", i+2), row.QtyOnhand)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", i+2), row.QtyReserved)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", i+2), row.QtyAvailable)
	}

	// Simpan file ke dalam response
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="inventory.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(http.StatusInternalServerError).SendString("Failed to generate Excel")
	}

	return nil
}
