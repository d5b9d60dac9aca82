package routes

import (
	"shop-app/config"
	"shop-app/controllers"
	"shop-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupProductRoutes(app *fiber.App, db *gorm.DB) {
	productController := controllers.NewProductController(db)

	api := app.Group(config.MAIN_ROUTES+"/products", middleware.AuthMiddleware(db))

	api.Post("/", productController.CreateProduct)
	api.Get("/", productController.GetProducts)
	api.Get("/:id", productController.GetProductByID)
}
