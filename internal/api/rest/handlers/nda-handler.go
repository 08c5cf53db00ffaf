package handlers

import (
	"strings"

	"github.com/PitchPoint/nda_service/internal/api/rest/middleware"
	"github.com/PitchPoint/nda_service/internal/domain"
	"github.com/PitchPoint/nda_service/internal/dto"
	"github.com/PitchPoint/nda_service/internal/helper"
	"github.com/PitchPoint/nda_service/internal/helper/utils"
	"github.com/PitchPoint/nda_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type NDAHandler struct {
	svc       services.NDAService
	accessSvc services.AccessService
	auth      helper.Auth
}

func NewNDAHandler(svc services.NDAService, accessSvc services.AccessService, auth helper.Auth) *NDAHandler {
	return &NDAHandler{svc: svc, accessSvc: accessSvc, auth: auth}
}

func (h *NDAHandler) SetupRoutes(app *fiber.App) {
	ndas := app.Group("/api/ndas", middleware.AuthMiddleware(h.auth))

	// Requester side
	ndas.Post("/request", middleware.RequireRole(domain.RoleInvestor, domain.RoleProduction), h.CreateRequest)
	ndas.Post("/requests/:requestID/withdraw", h.WithdrawRequest)

	// Owner side
	ndas.Get("/requests", middleware.RequireRole(domain.RoleCreator), h.ListRequestsForPitch)
	ndas.Put("/requests/:requestID/approve", middleware.RequireRole(domain.RoleCreator), h.ApproveRequest)
	ndas.Put("/requests/:requestID/reject", middleware.RequireRole(domain.RoleCreator), h.RejectRequest)
	ndas.Post("/:ndaID/revoke", middleware.RequireRole(domain.RoleCreator), h.RevokeNDA)

	// Any authenticated viewer
	ndas.Get("/pitch/:pitchID/status", h.GetAccessStatus)
}

func (h *NDAHandler) CreateRequest(ctx *fiber.Ctx) error {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "UNAUTHENTICATED", "unauthorized")
	}

	var body dto.CreateNDARequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "BAD_REQUEST", "please provide valid inputs")
	}
	if body.PitchID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "BAD_REQUEST", "pitch_id is required")
	}
	if t := strings.TrimSpace(body.NDAType); t != "" && !domain.NDAType(strings.ToLower(t)).Valid() {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "BAD_REQUEST", "nda_type must be basic, enhanced or custom")
	}

	resp, err := h.svc.CreateRequest(uint(user.UserID), user.Role, body)
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, resp)
}

func (h *NDAHandler) WithdrawRequest(ctx *fiber.Ctx) error {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "UNAUTHENTICATED", "unauthorized")
	}

	requestID, err := ctx.ParamsInt("requestID")
	if err != nil || requestID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request id")
	}

	if err := h.svc.WithdrawRequest(uint(requestID), uint(user.UserID)); err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"withdrawn": true})
}

func (h *NDAHandler) ListRequestsForPitch(ctx *fiber.Ctx) error {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "UNAUTHENTICATED", "unauthorized")
	}

	pitchID := ctx.QueryInt("pitchId")
	if pitchID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "BAD_REQUEST", "pitchId query parameter is required")
	}

	reqs, err := h.svc.ListRequestsForPitch(uint(pitchID), uint(user.UserID))
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, reqs)
}

func (h *NDAHandler) ApproveRequest(ctx *fiber.Ctx) error {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "UNAUTHENTICATED", "unauthorized")
	}

	requestID, err := ctx.ParamsInt("requestID")
	if err != nil || requestID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request id")
	}

	var body dto.RespondNDARequest
	_ = ctx.BodyParser(&body) // message is optional

	nda, err := h.svc.Approve(uint(requestID), uint(user.UserID), body.Message)
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, nda)
}

func (h *NDAHandler) RejectRequest(ctx *fiber.Ctx) error {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "UNAUTHENTICATED", "unauthorized")
	}

	requestID, err := ctx.ParamsInt("requestID")
	if err != nil || requestID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request id")
	}

	var body dto.RespondNDARequest
	_ = ctx.BodyParser(&body)

	if err := h.svc.Reject(uint(requestID), uint(user.UserID), body.Message); err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"rejected": true})
}

func (h *NDAHandler) RevokeNDA(ctx *fiber.Ctx) error {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "UNAUTHENTICATED", "unauthorized")
	}

	ndaID, err := ctx.ParamsInt("ndaID")
	if err != nil || ndaID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "BAD_REQUEST", "invalid nda id")
	}

	if err := h.svc.Revoke(uint(ndaID), uint(user.UserID)); err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"revoked": true})
}

func (h *NDAHandler) GetAccessStatus(ctx *fiber.Ctx) error {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "UNAUTHENTICATED", "unauthorized")
	}

	pitchID, err := ctx.ParamsInt("pitchID")
	if err != nil || pitchID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "BAD_REQUEST", "invalid pitch id")
	}

	decision, err := h.accessSvc.Evaluate(uint(pitchID), uint(user.UserID))
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, services.ToAccessStatusResponse(decision))
}
