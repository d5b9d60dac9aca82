package routes

import (
	"shop-app/config"
	"shop-app/controllers"
	"shop-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupCartRoutes(app *fiber.App, db *gorm.DB) {
	cartController := controllers.NewCartController(db)

	api := app.Group(config.MAIN_ROUTES+"/cart", middleware.AuthMiddleware(db))

	api.Get("/", cartController.GetCart)
	api.Post("/items", cartController.AddItem)
	api.Delete("/items/:product_id/:variant_id", cartController.RemoveItem)
}
