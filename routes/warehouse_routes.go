package routes

import (
	"shop-app/config"
	"shop-app/controllers"
	"shop-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupWarehouseRoutes(app *fiber.App, db *gorm.DB) {
	warehouseController := controllers.NewWarehouseController(db)

	api := app.Group(config.MAIN_ROUTES+"/warehouses", middleware.AuthMiddleware(db))

	api.Post("/", warehouseController.CreateWarehouse)
	api.Get("/", warehouseController.GetWarehouses)
	api.Put("/:id", warehouseController.UpdateWarehouse)
}
