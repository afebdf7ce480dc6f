package notification

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nkp491/surehelp/internal/auth"
	"github.com/nkp491/surehelp/internal/dto"
	"github.com/nkp491/surehelp/internal/shared"
)

type Handler struct {
	service *Service
	hub     *Hub
	logger  *slog.Logger
}

func NewHandler(service *Service, hub *Hub, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		hub:     hub,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.GET("/unread-count", h.UnreadCount)
	g.POST("/read-all", h.MarkAllRead)
	g.POST("/:id/read", h.MarkRead)
	g.GET("/stream", h.Stream)
}

func toResponse(n *Notification) dto.NotificationResponse {
	resp := dto.NotificationResponse{
		ID:        n.ID,
		Kind:      n.Kind,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
	if len(n.Data) > 0 {
		_ = json.Unmarshal(n.Data, &resp.Data)
	}
	if n.ReadAt != nil {
		resp.ReadAt = n.ReadAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Param        unread  query     bool    false  "only unread"
// @Param        limit   query     int     false  "max items (default 50, max 200)"
// @Param        before  query     string  false  "RFC3339 cursor"
// @Success      200     {object}  dto.NotificationListResponse
// @Failure      400     {object}  shared.APIError
// @Failure      401     {object}  shared.APIError
// @Security     BearerAuth
// @Router       /notifications [get]
func (h *Handler) List(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var opts ListOptions
	if v := c.QueryParam("unread"); v != "" {
		opts.UnreadOnly, err = strconv.ParseBool(v)
		if err != nil {
			return shared.BadRequest("invalid_unread", "unread must be a boolean")
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		opts.Limit, err = strconv.Atoi(v)
		if err != nil || opts.Limit < 1 {
			return shared.BadRequest("invalid_limit", "limit must be a positive integer")
		}
	}
	if v := c.QueryParam("before"); v != "" {
		opts.Before, err = time.Parse(time.RFC3339, v)
		if err != nil {
			return shared.BadRequest("invalid_before", "before must be an RFC3339 timestamp")
		}
	}

	items, err := h.service.List(c.Request().Context(), userID, opts)
	if err != nil {
		h.logger.Error("failed to list notifications", "error", err, "user_id", userID)
		return shared.InternalError("list_failed", "failed to list notifications")
	}

	resp := dto.NotificationListResponse{Notifications: make([]dto.NotificationResponse, len(items))}
	for i, n := range items {
		resp.Notifications[i] = toResponse(n)
	}
	return c.JSON(http.StatusOK, resp)
}

// @Summary      Count unread notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  dto.UnreadCountResponse
// @Failure      401  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /notifications/unread-count [get]
func (h *Handler) UnreadCount(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	count, err := h.service.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to count notifications", "error", err, "user_id", userID)
		return shared.InternalError("count_failed", "failed to count notifications")
	}
	return c.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

// @Summary      Mark a notification read
// @Tags         notifications
// @Param        id   path  string  true  "notification id"
// @Success      204  "No Content"
// @Failure      401  {object}  shared.APIError
// @Failure      404  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /notifications/{id}/read [post]
func (h *Handler) MarkRead(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkRead(c.Request().Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("notification_not_found", "notification not found")
		}
		h.logger.Error("failed to mark notification read", "error", err, "user_id", userID)
		return shared.InternalError("update_failed", "failed to update notification")
	}
	return c.NoContent(http.StatusNoContent)
}

// @Summary      Mark all notifications read
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  dto.MarkAllReadResponse
// @Failure      401  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /notifications/read-all [post]
func (h *Handler) MarkAllRead(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	n, err := h.service.MarkAllRead(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to mark notifications read", "error", err, "user_id", userID)
		return shared.InternalError("update_failed", "failed to update notifications")
	}
	return c.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: n})
}

// @Summary      Stream realtime events
// @Description  WebSocket carrying notification.created and metrics.updated events. Browsers may pass the token as access_token.
// @Tags         notifications
// @Param        access_token  query  string  false  "JWT when the Authorization header cannot be set"
// @Success      101  "Switching Protocols"
// @Failure      401  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /notifications/stream [get]
func (h *Handler) Stream(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	sub, err := h.hub.Subscribe(ctx, userID)
	if err != nil {
		h.logger.Error("failed to subscribe", "error", err, "user_id", userID)
		return shared.InternalError("subscribe_failed", "failed to open event stream")
	}
	defer sub.Close()

	ws, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err, "user_id", userID)
		return nil
	}

	conn := newStreamConn(ws, userID, h.logger)
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := ws.WriteJSON(Event{Type: EventStreamReady, At: time.Now()}); err != nil {
		conn.Close()
		return nil
	}

	h.logger.Info("event stream connected", "user_id", userID)

	go conn.writePump(ctx, sub.Events())
	conn.readPump()

	h.logger.Info("event stream disconnected", "user_id", userID)
	return nil
}
