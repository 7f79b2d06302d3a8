package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"wms-ledger/config"
	"wms-ledger/controllers"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controllers.NewAuthController(db)
	api := app.Group(config.MAIN_ROUTES)

	api.Post("/login", authController.Login)
}
