package main

import (
	"fmt"
	"log"

	"shop-app/config"
	"shop-app/controllers/idgen"
	"shop-app/database"
	"shop-app/routes"
	"shop-app/services"

	"github.com/gofiber/fiber/v2"
)

func main() {

	app := fiber.New()

	config.LoadConfig()

	// Connect to database
	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate models
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	// Setup CORS middleware
	config.SetupCORS(app)

	reindexer := services.NewReindexer(db, config.GeminiAPIKey)
	mailer := services.NewMailer()

	// Setup routes
	routes.SetupAuthRoutes(app, db)
	routes.SetupWarehouseRoutes(app, db)
	routes.SetupProductRoutes(app, db)
	routes.SetupInventoryRoutes(app, db)
	routes.SetupStockEntryRoutes(app, db)
	routes.SetupOrderRoutes(app, db, reindexer, mailer)
	routes.SetupCartRoutes(app, db)

	port := config.APP_PORT
	fmt.Println("🚀 Server berjalan di port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
