package controllers

import (
	"shop-app/models"
	"shop-app/repositories"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(DB *gorm.DB) *ProductController {
	return &ProductController{DB: DB}
}

type variantInput struct {
	Size  string `json:"size"`
	Color string `json:"color"`
	SKU   string `json:"sku" validate:"required"`
}

type productInput struct {
	Name     string         `json:"name" validate:"required"`
	SKU      string         `json:"sku" validate:"required"`
	Category string         `json:"category"`
	Price    int64          `json:"price" validate:"gte=0"`
	Variants []variantInput `json:"variants" validate:"required,min=1,dive"`
}

// CreateProduct membuat product + variants, lalu ledger row kosong
// untuk setiap variant di semua warehouse.
func (c *ProductController) CreateProduct(ctx *fiber.Ctx) error {
	var input productInput
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

	product := models.Product{
		Name:      input.Name,
		SKU:       input.SKU,
		Category:  input.Category,
		Price:     input.Price,
		CreatedBy: currentUserID(ctx),
	}
	for _, v := range input.Variants {
		product.Variants = append(product.Variants, models.Variant{
			Size:  v.Size,
			Color: v.Color,
			SKU:   v.SKU,
		})
	}

	if err := c.DB.Create(&product).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create product",
			"error":   err.Error(),
		})
	}

	invRepo := repositories.NewInventoryRepository(c.DB)
	for _, variant := range product.Variants {
		if err := invRepo.EnsureForVariant(variant.ID); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to create inventory rows",
				"error":   err.Error(),
			})
		}
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product created",
		"data":    product,
	})
}

func (c *ProductController) GetProducts(ctx *fiber.Ctx) error {
	var products []models.Product
	if err := c.DB.Preload("Variants").Order("id ASC").Find(&products).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"products": products},
	})
}

func (c *ProductController) GetProductByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	var product models.Product
	if err := c.DB.Preload("Variants").First(&product, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Product not found",
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}
