package routes

import (
	"shop-app/config"
	"shop-app/controllers"
	"shop-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupInventoryRoutes(app *fiber.App, db *gorm.DB) {
	inventoryController := controllers.NewInventoryController(db)

	api := app.Group(config.MAIN_ROUTES+"/inventory", middleware.AuthMiddleware(db))

	api.Get("/", inventoryController.GetInventory)
	api.Get("/available", inventoryController.GetAvailable)
	api.Get("/excel", inventoryController.ExportExcel)
}
