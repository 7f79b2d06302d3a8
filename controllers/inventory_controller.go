package controllers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"wms-ledger/repositories"
	"wms-ledger/services"
)

type InventoryController struct {
	projection *services.ProjectionService
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	catalog := repositories.NewRefDataRepository(db)
	return &InventoryController{
		projection: services.NewProjectionService(repositories.NewLedgerRepository(db), catalog),
	}
}

func (c *InventoryController) GetStockSummary(ctx *fiber.Ctx) error {
	filter := services.SummaryFilter{
		SkuID:      ctx.Query("sku"),
		LocationID: ctx.Query("location"),
		ZoneID:     ctx.Query("zone"),
	}

	rows, err := c.projection.GetStockSummary(currentTenant(ctx), ctx.Query("whs"), filter)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"summary": rows},
	})
}

func (c *InventoryController) ExportExcel(ctx *fiber.Ctx) error {
	rows, err := c.projection.GetStockSummary(currentTenant(ctx), ctx.Query("whs"), services.SummaryFilter{})
	if err != nil {
		return respondError(ctx, err)
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "SKU")
	f.SetCellValue(sheet, "B1", "Location")
	f.SetCellValue(sheet, "C1", "Zone")
	f.SetCellValue(sheet, "D1", "On Hand")
	f.SetCellValue(sheet, "E1", "Reserved")
	f.SetCellValue(sheet, "F1", "Quarantine")
	f.SetCellValue(sheet, "G1", "Available")

	for i, row := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), row.SkuID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), row.LocationID)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), row.ZoneID)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), row.QtyOnhand)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", i+2), row.QtyReserved)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", i+2), row.QtyQuarantine)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", i+2), row.QtyAvailable)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="stock_summary.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(http.StatusInternalServerError).SendString("Failed to generate Excel")
	}

	return nil
}
