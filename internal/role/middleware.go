package role

import (
	"github.com/labstack/echo/v4"
	"github.com/nkp491/surehelp/internal/auth"
	"github.com/nkp491/surehelp/internal/shared"
)

// RequireRole rejects requests whose user holds none of roles.
func (c *Checker) RequireRole(roles ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			userID, err := auth.RequireAuth(ctx)
			if err != nil {
				return err
			}

			ok, err := c.HasAny(ctx.Request().Context(), userID, roles...)
			if err != nil {
				c.logger.Error("failed to check roles", "error", err, "user_id", userID)
				return shared.InternalError("role_check_failed", "failed to check roles")
			}
			if !ok {
				return shared.Forbidden("insufficient_role", "insufficient permissions")
			}
			return next(ctx)
		}
	}
}
