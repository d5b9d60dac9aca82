package routes

import (
	"shop-app/config"
	"shop-app/controllers"
	"shop-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupStockEntryRoutes(app *fiber.App, db *gorm.DB) {
	stockEntryController := controllers.NewStockEntryController(db)

	api := app.Group(config.MAIN_ROUTES+"/stock-entries", middleware.AuthMiddleware(db))

	api.Post("/", stockEntryController.CreateStockEntry)
	api.Post("/filter", stockEntryController.FilterStockEntries)
	api.Get("/excel", stockEntryController.ExportExcel)
	api.Get("/:id", stockEntryController.GetStockEntryByID)
	api.Put("/:id", stockEntryController.UpdateStockEntry)
	api.Delete("/:id", stockEntryController.DeleteStockEntry)
	api.Post("/:id/submit", stockEntryController.SubmitStockEntry)
	api.Post("/:id/cancel", stockEntryController.CancelStockEntry)
}
