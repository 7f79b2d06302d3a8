package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"wms-ledger/repositories"
	"wms-ledger/services"
)

type AdjustmentController struct {
	adjustments *services.AdjustmentService
}

func NewAdjustmentController(db *gorm.DB) *AdjustmentController {
	catalog := repositories.NewRefDataRepository(db)
	ledger := services.NewLedgerService(repositories.NewLedgerRepository(db), catalog)

	return &AdjustmentController{
		adjustments: services.NewAdjustmentService(repositories.NewAdjustmentRepository(db), ledger, catalog),
	}
}

type createAdjustmentRequest struct {
	WhsCode    string  `json:"whs_code"`
	SkuID      string  `json:"sku_id" validate:"required"`
	LocationID string  `json:"location_id" validate:"required"`
	QtyDelta   float64 `json:"qty_delta" validate:"required"`
	ReasonCode string  `json:"reason_code" validate:"required"`
	Note       string  `json:"note"`
}

func (c *AdjustmentController) CreateAdjustment(ctx *fiber.Ctx) error {
	var input createAdjustmentRequest
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

	adj, err := c.adjustments.Create(services.CreateAdjustmentInput{
		TenantID:    currentTenant(ctx),
		WhsCode:     input.WhsCode,
		SkuID:       input.SkuID,
		LocationID:  input.LocationID,
		QtyDelta:    input.QtyDelta,
		ReasonCode:  input.ReasonCode,
		Note:        input.Note,
		RequestedBy: currentUserID(ctx),
	})
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Adjustment created",
		"data":    adj,
	})
}

func (c *AdjustmentController) GetAllAdjustments(ctx *fiber.Ctx) error {
	adjustments, err := c.adjustments.List(currentTenant(ctx))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    adjustments,
	})
}

func (c *AdjustmentController) GetAdjustment(ctx *fiber.Ctx) error {
	adj, err := c.adjustments.Get(currentTenant(ctx), ctx.Params("code"))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    adj,
	})
}

func (c *AdjustmentController) SubmitAdjustment(ctx *fiber.Ctx) error {
	adj, err := c.adjustments.Submit(currentTenant(ctx), ctx.Params("code"), currentUserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Adjustment submitted",
		"data":    adj,
	})
}

func (c *AdjustmentController) ApproveAdjustment(ctx *fiber.Ctx) error {
	adj, err := c.adjustments.Approve(currentTenant(ctx), ctx.Params("code"), currentUserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Adjustment approved",
		"data":    adj,
	})
}

func (c *AdjustmentController) RejectAdjustment(ctx *fiber.Ctx) error {
	var input noteRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	adj, err := c.adjustments.Reject(currentTenant(ctx), ctx.Params("code"), currentUserID(ctx), input.Note)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Adjustment rejected",
		"data":    adj,
	})
}

func (c *AdjustmentController) CancelAdjustment(ctx *fiber.Ctx) error {
	var input noteRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	adj, err := c.adjustments.Cancel(currentTenant(ctx), ctx.Params("code"), currentUserID(ctx), input.Reason)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Adjustment cancelled",
		"data":    adj,
	})
}
