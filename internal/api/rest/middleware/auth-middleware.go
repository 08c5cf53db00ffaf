package middleware

import (
	"strings"

	"github.com/PitchPoint/nda_service/internal/helper"
	"github.com/PitchPoint/nda_service/internal/helper/utils"
	"github.com/gofiber/fiber/v2"
)

func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// 1) try cookie first
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))

		// 2) fallback to Authorization header
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		user, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, "UNAUTHENTICATED", err.Error())
		}

		ctx.Locals("userID", uint(user.UserID))
		ctx.Locals("role", user.Role)
		ctx.Locals("user", user)
		return ctx.Next()
	}
}

// RequireRole gates a route to the given identity-provider roles. Ownership
// checks (approve/reject/revoke) live in the service layer, which knows the
// pitch; this only filters by coarse role.
func RequireRole(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, ok := ctx.Locals("role").(string)
		if !ok || role == "" {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, "UNAUTHENTICATED", "unauthorized")
		}

		for _, r := range roles {
			if strings.EqualFold(role, r) {
				return ctx.Next()
			}
		}
		return utils.ResponseError(ctx, fiber.StatusForbidden, "UNAUTHORIZED", "insufficient role")
	}
}
