package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"wms-ledger/repositories"
)

// MasterController exposes read-only reference data: zones, locations,
// reason codes and the variance threshold config.
type MasterController struct {
	refdata *repositories.RefDataRepository
}

func NewMasterController(db *gorm.DB) *MasterController {
	return &MasterController{refdata: repositories.NewRefDataRepository(db)}
}

func (c *MasterController) GetZones(ctx *fiber.Ctx) error {
	zones, err := c.refdata.Zones(currentTenant(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    zones,
	})
}

func (c *MasterController) GetLocations(ctx *fiber.Ctx) error {
	locations, err := c.refdata.Locations(currentTenant(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    locations,
	})
}

func (c *MasterController) GetReasonCodes(ctx *fiber.Ctx) error {
	reasons, err := c.refdata.ReasonCodes(currentTenant(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    reasons,
	})
}

func (c *MasterController) GetVarianceConfig(ctx *fiber.Ctx) error {
	cfg, err := c.refdata.FindVarianceConfig(currentTenant(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if cfg == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "No variance config for tenant",
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    cfg,
	})
}
