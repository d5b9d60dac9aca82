package controllers

import (
	"shop-app/models"
	"shop-app/repositories"
	"shop-app/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderController struct {
	DB        *gorm.DB
	Reindexer services.ProductReindexer
	Mailer    *services.Mailer
}

func NewOrderController(DB *gorm.DB, reindexer services.ProductReindexer, mailer *services.Mailer) *OrderController {
	return &OrderController{DB: DB, Reindexer: reindexer, Mailer: mailer}
}

type createOrderBody struct {
	Discount    int64                         `json:"discount" validate:"gte=0,lte=100"`
	ShippingFee int64                         `json:"shipping_fee" validate:"gte=0"`
	IsCOD       bool                          `json:"is_cod"`
	Items       []repositories.OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// CreateOrder menjalankan fulfillment: alokasi, reservasi, persist,
// rekonsiliasi cart. Reindex dan email jalan setelah commit,
// fire-and-forget.
func (c *OrderController) CreateOrder(ctx *fiber.Ctx) error {
	var body createOrderBody
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	// Validasi input menggunakan validator
	validate := validator.New()
	if err := validate.Struct(body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userID := currentUserID(ctx)
	if userID == 0 {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	input := repositories.CreateOrderInput{
		UserID:      uint(userID),
		Discount:    body.Discount,
		ShippingFee: body.ShippingFee,
		IsCOD:       body.IsCOD,
		Items:       body.Items,
	}

	repo := repositories.NewOrderRepository(c.DB)
	order, productIDs, err := repo.CreateOrder(input)
	if err != nil {
		return respondRepoError(ctx, err)
	}

	// Side effect non-kritis setelah commit
	services.ReindexProductsAsync(c.Reindexer, productIDs)

	var user models.User
	if err := c.DB.First(&user, userID).Error; err == nil {
		services.SendOrderConfirmationAsync(c.Mailer, user.Email, order)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order created",
		"data":    order,
	})
}

// CancelOrder melepas reservasi stok dan menandai order cancelled.
func (c *OrderController) CancelOrder(ctx *fiber.Ctx) error {
	id, err := parseSnowflakeParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewOrderRepository(c.DB)
	order, productIDs, err := repo.CancelOrder(id)
	if err != nil {
		return respondRepoError(ctx, err)
	}

	services.ReindexProductsAsync(c.Reindexer, productIDs)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Order cancelled",
		"data":    order,
	})
}

// AdvanceOrderStatus menaikkan status order satu langkah.
func (c *OrderController) AdvanceOrderStatus(ctx *fiber.Ctx) error {
	id, err := parseSnowflakeParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var body struct {
		Status string `json:"status" validate:"required"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	validate := validator.New()
	if err := validate.Struct(body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewOrderRepository(c.DB)
	order, err := repo.AdvanceStatus(id, body.Status)
	if err != nil {
		return respondRepoError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Order status updated",
		"data":    order,
	})
}

func (c *OrderController) GetOrders(ctx *fiber.Ctx) error {
	repo := repositories.NewOrderRepository(c.DB)
	list, err := repo.GetOrderList()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"orders": list},
	})
}

func (c *OrderController) GetOrderByID(ctx *fiber.Ctx) error {
	id, err := parseSnowflakeParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewOrderRepository(c.DB)
	order, err := repo.GetByID(id)
	if err != nil {
		return respondRepoError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}
