package profile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nkp491/surehelp/internal/auth"
	"github.com/nkp491/surehelp/internal/dto"
	"github.com/nkp491/surehelp/internal/shared"
)

// RoleSource lists the role names granted to a user.
type RoleSource interface {
	RoleNames(ctx context.Context, userID string) ([]string, error)
}

type Handler struct {
	store  *Store
	roles  RoleSource
	logger *slog.Logger
}

func NewHandler(store *Store, roles RoleSource, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		roles:  roles,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/me", h.Me)
	g.PATCH("/me", h.UpdateMe)
	g.GET("/me/privacy", h.GetPrivacy)
	g.PUT("/me/privacy", h.UpdatePrivacy)
}

func (h *Handler) meResponse(c echo.Context, p *Profile) (dto.MeResponse, error) {
	resp := dto.MeResponse{
		ID:        p.ID,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
		AvatarURL: p.AvatarURL,
		Roles:     []string{},
	}
	if h.roles == nil {
		return resp, nil
	}

	roles, err := h.roles.RoleNames(c.Request().Context(), p.ID)
	if err != nil {
		return dto.MeResponse{}, err
	}
	if roles != nil {
		resp.Roles = roles
	}
	return resp, nil
}

// @Summary      Get current profile
// @Description  Returns the authenticated user's profile and roles
// @Tags         profile
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  shared.APIError
// @Failure      404  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /me [get]
func (h *Handler) Me(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	p, err := h.store.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("profile_not_found", "profile not found")
		}
		h.logger.Error("failed to get profile", "error", err, "user_id", userID)
		return shared.InternalError("get_profile_failed", "failed to get profile")
	}

	resp, err := h.meResponse(c, p)
	if err != nil {
		h.logger.Error("failed to load roles", "error", err, "user_id", userID)
		return shared.InternalError("get_profile_failed", "failed to get profile")
	}
	return c.JSON(http.StatusOK, resp)
}

// @Summary      Update current profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body      dto.UpdateProfileRequest  true  "fields to change"
// @Success      200      {object}  dto.MeResponse
// @Failure      400      {object}  shared.APIError
// @Failure      401      {object}  shared.APIError
// @Failure      404      {object}  shared.APIError
// @Security     BearerAuth
// @Router       /me [patch]
func (h *Handler) UpdateMe(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	updates := map[string]any{}
	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = strings.TrimSpace(*req.AvatarURL)
	}

	p, err := h.store.Update(c.Request().Context(), userID, updates)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("profile_not_found", "profile not found")
		}
		h.logger.Error("failed to update profile", "error", err, "user_id", userID)
		return shared.InternalError("update_failed", "failed to update profile")
	}

	resp, err := h.meResponse(c, p)
	if err != nil {
		h.logger.Error("failed to load roles", "error", err, "user_id", userID)
		return shared.InternalError("update_failed", "failed to update profile")
	}
	return c.JSON(http.StatusOK, resp)
}

func privacyToResponse(s PrivacySettings) dto.PrivacySettings {
	return dto.PrivacySettings{
		Visibility:  string(s.Visibility),
		ShowEmail:   s.ShowEmail,
		ShowPhone:   s.ShowPhone,
		ShowMetrics: s.ShowMetrics,
	}
}

// @Summary      Get privacy settings
// @Description  Stored settings that cannot be read fall back to defaults
// @Tags         profile
// @Produce      json
// @Success      200  {object}  dto.PrivacySettings
// @Failure      401  {object}  shared.APIError
// @Failure      404  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /me/privacy [get]
func (h *Handler) GetPrivacy(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	p, err := h.store.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("profile_not_found", "profile not found")
		}
		h.logger.Error("failed to get profile", "error", err, "user_id", userID)
		return shared.InternalError("get_privacy_failed", "failed to get privacy settings")
	}

	settings, err := ParsePrivacy(p.Privacy)
	if err != nil {
		h.logger.Warn("using default privacy settings", "error", err, "user_id", userID)
		settings = DefaultPrivacy()
	}
	return c.JSON(http.StatusOK, privacyToResponse(settings))
}

// @Summary      Replace privacy settings
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body      dto.PrivacySettings  true  "settings"
// @Success      200      {object}  dto.PrivacySettings
// @Failure      400      {object}  shared.APIError
// @Failure      401      {object}  shared.APIError
// @Security     BearerAuth
// @Router       /me/privacy [put]
func (h *Handler) UpdatePrivacy(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req dto.PrivacySettings
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	settings := PrivacySettings{
		Visibility:  Visibility(req.Visibility),
		ShowEmail:   req.ShowEmail,
		ShowPhone:   req.ShowPhone,
		ShowMetrics: req.ShowMetrics,
	}
	data, err := EncodePrivacy(settings)
	if err != nil {
		return shared.BadRequest("invalid_privacy_settings", "visibility must be public, team or private")
	}

	if err := h.store.SetPrivacy(c.Request().Context(), userID, data); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("profile_not_found", "profile not found")
		}
		h.logger.Error("failed to save privacy settings", "error", err, "user_id", userID)
		return shared.InternalError("update_failed", "failed to update privacy settings")
	}

	return c.JSON(http.StatusOK, privacyToResponse(settings))
}
