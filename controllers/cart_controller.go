package controllers

import (
	"shop-app/repositories"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CartController struct {
	DB *gorm.DB
}

func NewCartController(DB *gorm.DB) *CartController {
	return &CartController{DB: DB}
}

func (c *CartController) GetCart(ctx *fiber.Ctx) error {
	userID := currentUserID(ctx)
	repo := repositories.NewCartRepository(c.DB)
	cart, err := repo.GetByUserID(uint(userID))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    cart,
	})
}

type cartItemInput struct {
	ProductID uint `json:"product_id" validate:"required"`
	VariantID uint `json:"variant_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

func (c *CartController) AddItem(ctx *fiber.Ctx) error {
	var input cartItemInput
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

	userID := currentUserID(ctx)
	repo := repositories.NewCartRepository(c.DB)
	cart, err := repo.AddItem(uint(userID), input.ProductID, input.VariantID, input.Quantity)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Item added to cart",
		"data":    cart,
	})
}

func (c *CartController) RemoveItem(ctx *fiber.Ctx) error {
	productID, err := ctx.ParamsInt("product_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	variantID, err := ctx.ParamsInt("variant_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid variant id"})
	}

	userID := currentUserID(ctx)
	repo := repositories.NewCartRepository(c.DB)
	cart, err := repo.GetByUserID(uint(userID))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := repo.RemoveItem(cart.ID, uint(productID), uint(variantID)); err != nil {
		return respondRepoError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Item removed from cart",
	})
}
