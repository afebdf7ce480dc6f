package role

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/nkp491/surehelp/internal/auth"
	"github.com/nkp491/surehelp/internal/dto"
	"github.com/nkp491/surehelp/internal/shared"
)

// Notifier tells a user their roles changed.
type Notifier interface {
	Send(ctx context.Context, userID, kind, title, message string, data map[string]any) error
}

type Handler struct {
	checker  *Checker
	notifier Notifier
	logger   *slog.Logger
}

// NewHandler builds the role handler. notifier may be nil.
func NewHandler(checker *Checker, notifier Notifier, logger *slog.Logger) *Handler {
	return &Handler{
		checker:  checker,
		notifier: notifier,
		logger:   logger,
	}
}

func (h *Handler) notify(ctx context.Context, userID, kind, title string, r Role) {
	if h.notifier == nil {
		return
	}
	if err := h.notifier.Send(ctx, userID, kind, title, "", map[string]any{"role": string(r)}); err != nil {
		h.logger.Error("failed to send role notification", "error", err, "user_id", userID, "role", r)
	}
}

// RegisterRoutes mounts /me/roles on g and the admin routes on admin, which
// is guarded by RequireRole(SystemAdmin).
func (h *Handler) RegisterRoutes(g *echo.Group, admin *echo.Group) {
	g.GET("/me/roles", h.MyRoles)
	admin.POST("/roles", h.Grant)
	admin.DELETE("/roles", h.Revoke)
}

func (h *Handler) rolesResponse(c echo.Context, userID string) error {
	ctx := c.Request().Context()
	names, err := h.checker.RoleNames(ctx, userID)
	if err != nil {
		h.logger.Error("failed to load roles", "error", err, "user_id", userID)
		return shared.InternalError("get_roles_failed", "failed to get roles")
	}
	depth, err := h.checker.HierarchyDepth(ctx, userID)
	if err != nil {
		h.logger.Error("failed to load roles", "error", err, "user_id", userID)
		return shared.InternalError("get_roles_failed", "failed to get roles")
	}
	return c.JSON(http.StatusOK, dto.RolesResponse{
		UserID:         userID,
		Roles:          names,
		HierarchyDepth: depth,
	})
}

// @Summary      Get my roles
// @Tags         roles
// @Produce      json
// @Success      200  {object}  dto.RolesResponse
// @Failure      401  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /me/roles [get]
func (h *Handler) MyRoles(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	return h.rolesResponse(c, userID)
}

func (h *Handler) bindChange(c echo.Context) (string, Role, error) {
	var req dto.RoleChangeRequest
	if err := c.Bind(&req); err != nil {
		return "", "", shared.BadRequest("invalid_request", "invalid request body")
	}
	if _, err := uuid.Parse(req.UserID); err != nil {
		return "", "", shared.BadRequest("invalid_user_id", "user_id must be a UUID")
	}
	r, err := Parse(req.Role)
	if err != nil {
		return "", "", shared.BadRequest("invalid_role", "unknown role")
	}
	return req.UserID, r, nil
}

// @Summary      Grant a role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      dto.RoleChangeRequest  true  "user and role"
// @Success      200      {object}  dto.RolesResponse
// @Failure      400      {object}  shared.APIError
// @Failure      403      {object}  shared.APIError
// @Security     BearerAuth
// @Router       /admin/roles [post]
func (h *Handler) Grant(c echo.Context) error {
	adminID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	userID, r, err := h.bindChange(c)
	if err != nil {
		return err
	}

	if err := h.checker.Grant(c.Request().Context(), userID, r, adminID); err != nil {
		h.logger.Error("failed to grant role", "error", err, "user_id", userID, "role", r)
		return shared.InternalError("grant_failed", "failed to grant role")
	}
	h.logger.Info("role granted", "user_id", userID, "role", r, "granted_by", adminID)
	h.notify(c.Request().Context(), userID, "role.granted", "You were granted the "+string(r)+" role", r)

	return h.rolesResponse(c, userID)
}

// @Summary      Revoke a role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      dto.RoleChangeRequest  true  "user and role"
// @Success      200      {object}  dto.RolesResponse
// @Failure      400      {object}  shared.APIError
// @Failure      403      {object}  shared.APIError
// @Failure      404      {object}  shared.APIError
// @Security     BearerAuth
// @Router       /admin/roles [delete]
func (h *Handler) Revoke(c echo.Context) error {
	adminID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	userID, r, err := h.bindChange(c)
	if err != nil {
		return err
	}

	if err := h.checker.Revoke(c.Request().Context(), userID, r); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("role_not_found", "user does not hold this role")
		}
		h.logger.Error("failed to revoke role", "error", err, "user_id", userID, "role", r)
		return shared.InternalError("revoke_failed", "failed to revoke role")
	}
	h.logger.Info("role revoked", "user_id", userID, "role", r, "revoked_by", adminID)
	h.notify(c.Request().Context(), userID, "role.revoked", "Your "+string(r)+" role was removed", r)

	return h.rolesResponse(c, userID)
}
