package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"wms-ledger/config"
	"wms-ledger/controllers/idgen"
	"wms-ledger/database"
	"wms-ledger/routes"
)

func main() {

	app := fiber.New()

	config.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	config.SetupCORS(app)

	routes.SetupAuthRoutes(app, db)
	routes.SetupMovementRoutes(app, db)
	routes.SetupInventoryRoutes(app, db)
	routes.SetupStockCountRoutes(app, db)
	routes.SetupAdjustmentRoutes(app, db)
	routes.SetupMasterRoutes(app, db)

	port := config.APP_PORT
	fmt.Println("🚀 Server running on port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
