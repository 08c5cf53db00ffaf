package handlers

import (
	"github.com/PitchPoint/nda_service/internal/api/rest/middleware"
	"github.com/PitchPoint/nda_service/internal/helper"
	"github.com/PitchPoint/nda_service/internal/helper/utils"
	"github.com/PitchPoint/nda_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

// PitchHandler serves the NDA-gated pitch read. Pitch CRUD lives in the pitch
// service; this endpoint only shapes what the current viewer may see.
type PitchHandler struct {
	accessSvc services.AccessService
	auth      helper.Auth
}

func NewPitchHandler(accessSvc services.AccessService, auth helper.Auth) *PitchHandler {
	return &PitchHandler{accessSvc: accessSvc, auth: auth}
}

func (h *PitchHandler) SetupRoutes(app *fiber.App) {
	pitches := app.Group("/api/pitches", middleware.AuthMiddleware(h.auth))
	pitches.Get("/:pitchID", h.GetPitch)
}

func (h *PitchHandler) GetPitch(ctx *fiber.Ctx) error {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "UNAUTHENTICATED", "unauthorized")
	}

	pitchID, err := ctx.ParamsInt("pitchID")
	if err != nil || pitchID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "BAD_REQUEST", "invalid pitch id")
	}

	view, err := h.accessSvc.ViewPitch(uint(pitchID), uint(user.UserID))
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, view)
}
