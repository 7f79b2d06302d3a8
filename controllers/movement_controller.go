package controllers

import (
	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"wms-ledger/models"
	"wms-ledger/repositories"
	"wms-ledger/services"
)

type MovementController struct {
	ledger *services.LedgerService
}

func NewMovementController(db *gorm.DB) *MovementController {
	catalog := repositories.NewRefDataRepository(db)
	return &MovementController{
		ledger: services.NewLedgerService(repositories.NewLedgerRepository(db), catalog),
	}
}

var validate = validator.New()

type appendMovementRequest struct {
	WhsCode      string  `json:"whs_code"`
	MovementType string  `json:"movement_type" validate:"required"`
	SkuID        string  `json:"sku_id" validate:"required"`
	Qty          float64 `json:"qty" validate:"required"`
	Uom          string  `json:"uom"`
	FromLocation string  `json:"from_location"`
	ToLocation   string  `json:"to_location"`
	RefType      string  `json:"ref_type"`
	RefID        string  `json:"ref_id"`
	ReasonCode   string  `json:"reason_code"`
}

func (c *MovementController) AppendMovement(ctx *fiber.Ctx) error {
	var input appendMovementRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	entry := &models.MovementEntry{
		TenantID:     currentTenant(ctx),
		WhsCode:      input.WhsCode,
		MovementType: models.MovementType(input.MovementType),
		SkuID:        input.SkuID,
		Qty:          input.Qty,
		Uom:          input.Uom,
		FromLocation: input.FromLocation,
		ToLocation:   input.ToLocation,
		RefType:      input.RefType,
		RefID:        input.RefID,
		ReasonCode:   input.ReasonCode,
		CreatedBy:    currentUserID(ctx),
	}

	id, err := c.ledger.AppendMovement(entry)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Movement recorded",
		"data": fiber.Map{
			"entry_id": id,
			"entry":    entry,
		},
	})
}

func (c *MovementController) ListMovements(ctx *fiber.Ctx) error {
	filter := services.MovementFilter{
		SkuID:        ctx.Query("sku"),
		LocationID:   ctx.Query("location"),
		MovementType: models.MovementType(ctx.Query("movement_type")),
	}

	entries, err := c.ledger.ListMovements(currentTenant(ctx), ctx.Query("whs"), filter)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    entries,
	})
}
