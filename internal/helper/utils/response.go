package utils

import (
	"github.com/PitchPoint/nda_service/internal/domain"
	"github.com/gofiber/fiber/v2"
)

func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"success": true, "data": data})
}

func ResponseError(ctx *fiber.Ctx, status int, code, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   fiber.Map{"code": code, "message": msg},
	})
}

// ResponseDomainError maps the NDA error taxonomy onto HTTP statuses. Anything
// that is not a domain error surfaces as a generic 500.
func ResponseDomainError(ctx *fiber.Ctx, err error) error {
	de := domain.AsError(err)
	if de == nil {
		return ResponseError(ctx, fiber.StatusInternalServerError, "INTERNAL", "internal server error")
	}

	var status int
	switch de.Code {
	case domain.ErrCodeUnauthorized:
		status = fiber.StatusForbidden
	case domain.ErrCodeNotFound:
		status = fiber.StatusNotFound
	case domain.ErrCodeInvalidTransition, domain.ErrCodeDuplicateRequest, domain.ErrCodeAlreadySigned:
		status = fiber.StatusConflict
	default:
		status = fiber.StatusInternalServerError
	}

	body := fiber.Map{"code": string(de.Code), "message": de.Message}
	if de.ExistingID != 0 {
		body["existing_id"] = de.ExistingID
	}
	return ctx.Status(status).JSON(fiber.Map{"success": false, "error": body})
}
