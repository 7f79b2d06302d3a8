package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"wms-ledger/config"
	"wms-ledger/controllers"
	"wms-ledger/middleware"
)

func SetupStockCountRoutes(app *fiber.App, db *gorm.DB) {
	stockCountController := controllers.NewStockCountController(db)
	api := app.Group(config.MAIN_ROUTES+"/stock-count", middleware.AuthMiddleware)

	api.Get("/", stockCountController.GetAllCountPlans)
	api.Post("/", stockCountController.CreateCountPlan)
	api.Get("/:code", stockCountController.GetCountPlan)
	api.Get("/:code/progress", stockCountController.GetProgress)
	api.Post("/:code/entries", stockCountController.AddCountEntry)
	api.Post("/:code/submit", stockCountController.SubmitCountPlan)
	api.Post("/:code/approve", stockCountController.ApproveCountPlan)
	api.Post("/:code/reject", stockCountController.RejectCountPlan)
	api.Post("/:code/cancel", stockCountController.CancelCountPlan)
}
