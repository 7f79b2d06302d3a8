package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"wms-ledger/config"
	"wms-ledger/controllers"
	"wms-ledger/middleware"
)

func SetupInventoryRoutes(app *fiber.App, db *gorm.DB) {
	inventoryController := controllers.NewInventoryController(db)
	api := app.Group(config.MAIN_ROUTES+"/inventory", middleware.AuthMiddleware)

	api.Get("/", inventoryController.GetStockSummary)
	api.Get("/export", inventoryController.ExportExcel)
}
