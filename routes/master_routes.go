package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"wms-ledger/config"
	"wms-ledger/controllers"
	"wms-ledger/middleware"
)

func SetupMasterRoutes(app *fiber.App, db *gorm.DB) {
	masterController := controllers.NewMasterController(db)
	api := app.Group(config.MAIN_ROUTES+"/master", middleware.AuthMiddleware)

	api.Get("/zones", masterController.GetZones)
	api.Get("/locations", masterController.GetLocations)
	api.Get("/reason-codes", masterController.GetReasonCodes)
	api.Get("/variance-config", masterController.GetVarianceConfig)
}
