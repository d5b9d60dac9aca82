package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"shop-app/repositories"
	"shop-app/types"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type StockEntryController struct {
	DB *gorm.DB
}

func NewStockEntryController(DB *gorm.DB) *StockEntryController {
	return &StockEntryController{DB: DB}
}

func parseSnowflakeParam(ctx *fiber.Ctx, name string) (types.SnowflakeID, error) {
	raw := ctx.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", name, raw)
	}
	return types.SnowflakeID(id), nil
}

func (c *StockEntryController) CreateStockEntry(ctx *fiber.Ctx) error {
	var input repositories.StockEntryInput
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

	repo := repositories.NewStockEntryRepository(c.DB)
	entry, err := repo.Create(input, currentUserID(ctx))
	if err != nil {
		return respondRepoError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Stock entry created",
		"data":    entry,
	})
}

func (c *StockEntryController) UpdateStockEntry(ctx *fiber.Ctx) error {
	id, err := parseSnowflakeParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var input repositories.StockEntryInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewStockEntryRepository(c.DB)
	entry, err := repo.Update(id, input, currentUserID(ctx))
	if err != nil {
		return respondRepoError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Stock entry updated",
		"data":    entry,
	})
}

func (c *StockEntryController) DeleteStockEntry(ctx *fiber.Ctx) error {
	id, err := parseSnowflakeParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewStockEntryRepository(c.DB)
	if err := repo.Delete(id); err != nil {
		return respondRepoError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Stock entry deleted",
	})
}

// SubmitStockEntry menerapkan penerimaan barang ke stok onhand.
func (c *StockEntryController) SubmitStockEntry(ctx *fiber.Ctx) error {
	id, err := parseSnowflakeParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewStockEntryRepository(c.DB)
	entry, err := repo.Submit(id, currentUserID(ctx))
	if err != nil {
		return respondRepoError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Stock entry submitted",
		"data":    entry,
	})
}

// CancelStockEntry membalikkan penerimaan yang sudah disubmit.
func (c *StockEntryController) CancelStockEntry(ctx *fiber.Ctx) error {
	id, err := parseSnowflakeParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewStockEntryRepository(c.DB)
	entry, err := repo.Cancel(id, currentUserID(ctx))
	if err != nil {
		return respondRepoError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Stock entry cancelled",
		"data":    entry,
	})
}

func (c *StockEntryController) GetStockEntryByID(ctx *fiber.Ctx) error {
	id, err := parseSnowflakeParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewStockEntryRepository(c.DB)
	entry, err := repo.GetByID(id)
	if err != nil {
		return respondRepoError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    entry,
	})
}

func (c *StockEntryController) FilterStockEntries(ctx *fiber.Ctx) error {
	var filter repositories.StockEntryFilter
	if err := ctx.BodyParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	repo := repositories.NewStockEntryRepository(c.DB)
	list, err := repo.Filter(filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"stock_entries": list},
	})
}

// Handler untuk generate dan kirim file Excel
func (c *StockEntryController) ExportExcel(ctx *fiber.Ctx) error {
	repo := repositories.NewStockEntryRepository(c.DB)
	list, err := repo.Filter(repositories.StockEntryFilter{})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Code")
	f.SetCellValue(sheet, "B1", "Type")
	f.SetCellValue(sheet, "C1", "Status")
	f.SetCellValue(sheet, "D1", "Supplier")
	f.SetCellValue(sheet, "E1", "Total Line")
	f.SetCellValue(sheet, "F1", "Total Qty")
	f.SetCellValue(sheet, "G1", "Total Cost")

	for i, entry := range list {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), entry.Code)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), entry.Type)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), entry.Status)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), entry.SupplierName)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", i+2), entry.TotalLine)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", i+2), entry.TotalQty)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", i+2), entry.TotalCost)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="stock_entries.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(http.StatusInternalServerError).SendString("Failed to generate Excel")
	}

	return nil
}
