package routes

import (
	"shop-app/config"
	"shop-app/controllers"
	"shop-app/middleware"
	"shop-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupOrderRoutes(app *fiber.App, db *gorm.DB, reindexer services.ProductReindexer, mailer *services.Mailer) {
	orderController := controllers.NewOrderController(db, reindexer, mailer)

	api := app.Group(config.MAIN_ROUTES+"/orders", middleware.AuthMiddleware(db))

	api.Post("/", orderController.CreateOrder)
	api.Get("/", orderController.GetOrders)
	api.Get("/:id", orderController.GetOrderByID)
	api.Post("/:id/cancel", orderController.CancelOrder)
	api.Put("/:id/status", orderController.AdvanceOrderStatus)
}
