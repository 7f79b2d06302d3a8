package controllers

import (
	"github.com/gofiber/fiber/v2"

	"wms-ledger/services"
)

// respondError maps the engine's error kinds to transport codes. Anything
// without a kind is an internal failure.
func respondError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch services.KindOf(err) {
	case services.KindValidation:
		status = fiber.StatusBadRequest
	case services.KindConflict:
		status = fiber.StatusConflict
	case services.KindNotFound:
		status = fiber.StatusNotFound
	}
	return ctx.Status(status).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

func currentUserID(ctx *fiber.Ctx) int {
	if v, ok := ctx.Locals("userID").(float64); ok {
		return int(v)
	}
	return 0
}

func currentTenant(ctx *fiber.Ctx) string {
	if v, ok := ctx.Locals("tenant").(string); ok {
		return v
	}
	return ""
}
