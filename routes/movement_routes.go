package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"wms-ledger/config"
	"wms-ledger/controllers"
	"wms-ledger/middleware"
)

func SetupMovementRoutes(app *fiber.App, db *gorm.DB) {
	movementController := controllers.NewMovementController(db)
	api := app.Group(config.MAIN_ROUTES+"/movements", middleware.AuthMiddleware)

	api.Get("/", movementController.ListMovements)
	api.Post("/", movementController.AppendMovement)
}
