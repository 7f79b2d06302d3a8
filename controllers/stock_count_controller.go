package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"wms-ledger/models"
	"wms-ledger/repositories"
	"wms-ledger/services"
	"wms-ledger/utils"
)

type StockCountController struct {
	counts *services.CountService
}

func NewStockCountController(db *gorm.DB) *StockCountController {
	catalog := repositories.NewRefDataRepository(db)
	ledgerStore := repositories.NewLedgerRepository(db)
	ledger := services.NewLedgerService(ledgerStore, catalog)
	projection := services.NewProjectionService(ledgerStore, catalog)
	plans := repositories.NewCountPlanRepository(db)

	return &StockCountController{
		counts: services.NewCountService(plans, ledger, projection, catalog),
	}
}

type createPlanRequest struct {
	WhsCode     string `json:"whs_code"`
	ZoneID      string `json:"zone_id" validate:"required"`
	ScopeType   string `json:"scope_type" validate:"required"`
	ScopeParam  string `json:"scope_param"`
	PlannedDate string `json:"planned_date"`
}

func (c *StockCountController) CreateCountPlan(ctx *fiber.Ctx) error {
	var input createPlanRequest
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

	plannedDate := input.PlannedDate
	if plannedDate == "" {
		plannedDate = utils.Timestamp()[:10]
	}

	plan, err := c.counts.CreatePlan(services.CreatePlanInput{
		TenantID:    currentTenant(ctx),
		WhsCode:     input.WhsCode,
		ZoneID:      input.ZoneID,
		ScopeType:   models.CountScopeType(input.ScopeType),
		ScopeParam:  input.ScopeParam,
		PlannedDate: plannedDate,
		CreatedBy:   currentUserID(ctx),
	})
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Count plan created",
		"data":    plan,
	})
}

func (c *StockCountController) GetAllCountPlans(ctx *fiber.Ctx) error {
	plans, err := c.counts.List(currentTenant(ctx))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    plans,
	})
}

func (c *StockCountController) GetCountPlan(ctx *fiber.Ctx) error {
	plan, err := c.counts.Get(currentTenant(ctx), ctx.Params("code"))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    plan,
	})
}

type addEntryRequest struct {
	LineID       string  `json:"line_id"`
	ScanMode     string  `json:"scan_mode"`
	ScannedValue string  `json:"scanned_value"`
	QtyCounted   float64 `json:"qty_counted"`
}

func (c *StockCountController) AddCountEntry(ctx *fiber.Ctx) error {
	var input addEntryRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	plan, err := c.counts.AddEntry(services.AddEntryInput{
		TenantID:     currentTenant(ctx),
		PlanCode:     ctx.Params("code"),
		LineID:       input.LineID,
		ScanMode:     models.ScanMode(input.ScanMode),
		ScannedValue: input.ScannedValue,
		QtyCounted:   input.QtyCounted,
		CountedBy:    currentUserID(ctx),
	})
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Count entry recorded",
		"data":    plan,
	})
}

func (c *StockCountController) SubmitCountPlan(ctx *fiber.Ctx) error {
	plan, err := c.counts.Submit(currentTenant(ctx), ctx.Params("code"), currentUserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	if plan.RequiresApproval {
		flagged := 0
		for _, line := range plan.Lines {
			if line.VarianceQty != nil && *line.VarianceQty != 0 {
				flagged++
			}
		}
		go func(code string, n int) {
			if err := utils.SendApprovalNotification(code, n); err != nil {
				fmt.Println("Failed to send approval notification:", err)
			}
		}(plan.Code, flagged)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Count plan submitted",
		"data":    plan,
	})
}

type approvePlanRequest struct {
	ReasonCode string `json:"reason_code" validate:"required"`
	Note       string `json:"note"`
}

func (c *StockCountController) ApproveCountPlan(ctx *fiber.Ctx) error {
	var input approvePlanRequest
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

	plan, err := c.counts.Approve(services.ApprovePlanInput{
		TenantID:   currentTenant(ctx),
		PlanCode:   ctx.Params("code"),
		ApprovedBy: currentUserID(ctx),
		ReasonCode: input.ReasonCode,
		Note:       input.Note,
	})
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Count plan approved",
		"data":    plan,
	})
}

type noteRequest struct {
	Note   string `json:"note"`
	Reason string `json:"reason"`
}

func (c *StockCountController) RejectCountPlan(ctx *fiber.Ctx) error {
	var input noteRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	plan, err := c.counts.Reject(currentTenant(ctx), ctx.Params("code"), currentUserID(ctx), input.Note)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Count plan rejected",
		"data":    plan,
	})
}

func (c *StockCountController) CancelCountPlan(ctx *fiber.Ctx) error {
	var input noteRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	plan, err := c.counts.Cancel(currentTenant(ctx), ctx.Params("code"), currentUserID(ctx), input.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Count plan cancelled",
		"data":    plan,
	})
}

func (c *StockCountController) GetProgress(ctx *fiber.Ctx) error {
	progress, err := c.counts.Progress(currentTenant(ctx), ctx.Params("code"))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    progress,
	})
}
