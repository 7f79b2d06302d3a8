package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"wms-ledger/config"
	"wms-ledger/controllers"
	"wms-ledger/middleware"
)

func SetupAdjustmentRoutes(app *fiber.App, db *gorm.DB) {
	adjustmentController := controllers.NewAdjustmentController(db)
	api := app.Group(config.MAIN_ROUTES+"/adjustments", middleware.AuthMiddleware)

	api.Get("/", adjustmentController.GetAllAdjustments)
	api.Post("/", adjustmentController.CreateAdjustment)
	api.Get("/:code", adjustmentController.GetAdjustment)
	api.Post("/:code/submit", adjustmentController.SubmitAdjustment)
	api.Post("/:code/approve", adjustmentController.ApproveAdjustment)
	api.Post("/:code/reject", adjustmentController.RejectAdjustment)
	api.Post("/:code/cancel", adjustmentController.CancelAdjustment)
}
