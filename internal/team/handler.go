package team

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/nkp491/surehelp/internal/auth"
	"github.com/nkp491/surehelp/internal/dto"
	"github.com/nkp491/surehelp/internal/metrics"
	"github.com/nkp491/surehelp/internal/profile"
	"github.com/nkp491/surehelp/internal/role"
	"github.com/nkp491/surehelp/internal/shared"
	"golang.org/x/sync/errgroup"
)

const (
	metricsFanOut = 8

	notificationTeamInvitation   = "team.invitation"
	notificationTeamMemberJoined = "team.member_joined"
)

// Notifier tells users about invitations and accepted memberships.
type Notifier interface {
	Send(ctx context.Context, userID, kind, title, message string, data map[string]any) error
}

type Handler struct {
	store       *Store
	profiles    *profile.Store
	roles       *role.Checker
	permissions *Permissions
	metrics     *metrics.Service
	metricsView *metrics.Handler
	notifier    Notifier
	logger      *slog.Logger
}

type HandlerConfig struct {
	Store       *Store
	Profiles    *profile.Store
	Roles       *role.Checker
	Permissions *Permissions
	Metrics     *metrics.Service
	MetricsView *metrics.Handler
	Notifier    Notifier
	Logger      *slog.Logger
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		store:       cfg.Store,
		profiles:    cfg.Profiles,
		roles:       cfg.Roles,
		permissions: cfg.Permissions,
		metrics:     cfg.Metrics,
		metricsView: cfg.MetricsView,
		notifier:    cfg.Notifier,
		logger:      cfg.Logger,
	}
}

// RegisterRoutes mounts the team routes on teams and the per-user metrics
// route on users.
func (h *Handler) RegisterRoutes(teams *echo.Group, users *echo.Group) {
	teams.POST("", h.CreateTeam, h.roles.RequireRole(role.Managers...))
	teams.GET("", h.ListTeams)
	teams.GET("/reports", h.Reports)
	teams.GET("/:id", h.GetTeam)
	teams.POST("/:id/members", h.AddMember)
	teams.POST("/:id/accept", h.AcceptInvite)
	teams.DELETE("/:id/members/:userId", h.RemoveMember)
	teams.GET("/:id/metrics", h.TeamMetrics)

	users.GET("/:id/metrics", h.UserMetrics)
}

func teamToResponse(t *Team) dto.TeamResponse {
	return dto.TeamResponse{
		ID:        t.ID,
		Name:      t.Name,
		OwnerID:   t.OwnerID,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) profileIndex(c echo.Context, ids []string) map[string]*profile.Profile {
	out := make(map[string]*profile.Profile, len(ids))
	if h.profiles == nil {
		return out
	}
	profiles, err := h.profiles.ListByIDs(c.Request().Context(), ids)
	if err != nil {
		h.logger.Warn("failed to load member profiles", "error", err)
		return out
	}
	for _, p := range profiles {
		out[p.ID] = p
	}
	return out
}

func displayName(p *profile.Profile) string {
	if p == nil {
		return ""
	}
	return p.FullName()
}

// access loads the team and the caller's membership. Admins get a nil member
// without error.
func (h *Handler) access(c echo.Context, userID string) (*Team, *Member, error) {
	ctx := c.Request().Context()

	t, err := h.store.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, shared.NotFound("team_not_found", "team not found")
		}
		h.logger.Error("failed to get team", "error", err, "team_id", c.Param("id"))
		return nil, nil, shared.InternalError("get_team_failed", "failed to get team")
	}

	m, err := h.store.GetMember(ctx, t.ID, userID)
	if err == nil {
		return t, m, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		h.logger.Error("failed to get membership", "error", err, "team_id", t.ID, "user_id", userID)
		return nil, nil, shared.InternalError("get_team_failed", "failed to get team")
	}

	admin, err := h.roles.IsAdmin(ctx, userID)
	if err != nil {
		h.logger.Error("failed to check roles", "error", err, "user_id", userID)
		return nil, nil, shared.InternalError("get_team_failed", "failed to get team")
	}
	if !admin {
		return nil, nil, shared.NotFound("team_not_found", "team not found")
	}
	return t, nil, nil
}

// @Summary      Create a team
// @Description  The caller becomes the owner. Requires a manager role.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateTeamRequest  true  "team"
// @Success      201      {object}  dto.TeamResponse
// @Failure      400      {object}  shared.APIError
// @Failure      403      {object}  shared.APIError
// @Security     BearerAuth
// @Router       /teams [post]
func (h *Handler) CreateTeam(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req dto.CreateTeamRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return shared.BadRequest("invalid_name", "team name is required")
	}

	t := &Team{Name: name, OwnerID: userID}
	if err := h.store.Create(c.Request().Context(), t); err != nil {
		h.logger.Error("failed to create team", "error", err, "user_id", userID)
		return shared.InternalError("create_failed", "failed to create team")
	}

	return c.JSON(http.StatusCreated, teamToResponse(t))
}

// @Summary      List my teams
// @Tags         teams
// @Produce      json
// @Success      200  {object}  dto.TeamListResponse
// @Failure      401  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /teams [get]
func (h *Handler) ListTeams(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	teams, err := h.store.ListForUser(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to list teams", "error", err, "user_id", userID)
		return shared.InternalError("list_failed", "failed to list teams")
	}

	resp := dto.TeamListResponse{Teams: make([]dto.TeamResponse, len(teams))}
	for i, t := range teams {
		resp.Teams[i] = teamToResponse(t)
	}
	return c.JSON(http.StatusOK, resp)
}

// @Summary      Get a team
// @Tags         teams
// @Produce      json
// @Param        id   path      string  true  "team id"
// @Success      200  {object}  dto.TeamResponse
// @Failure      404  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /teams/{id} [get]
func (h *Handler) GetTeam(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	t, _, err := h.access(c, userID)
	if err != nil {
		return err
	}

	members, err := h.store.Members(c.Request().Context(), t.ID)
	if err != nil {
		h.logger.Error("failed to list members", "error", err, "team_id", t.ID)
		return shared.InternalError("get_team_failed", "failed to get team")
	}

	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.UserID
	}
	profiles := h.profileIndex(c, ids)
	admin := h.isAdmin(c, userID)

	resp := teamToResponse(t)
	resp.Members = make([]dto.MemberResponse, len(members))
	for i, m := range members {
		p := profiles[m.UserID]
		resp.Members[i] = memberToResponse(m)
		resp.Members[i].Name = displayName(p)
		if p == nil {
			continue
		}
		privacy := profile.EffectivePrivacy(p)
		if admin || m.UserID == userID || privacy.SharesEmail() {
			resp.Members[i].Email = p.Email
		}
		if admin || m.UserID == userID || privacy.SharesPhone() {
			resp.Members[i].Phone = p.Phone
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func memberToResponse(m *Member) dto.MemberResponse {
	return dto.MemberResponse{
		UserID:    m.UserID,
		Role:      string(m.Role),
		ReportsTo: m.ReportsTo,
		Status:    string(m.Status),
	}
}

// isAdmin treats a failed role lookup as not admin.
func (h *Handler) isAdmin(c echo.Context, userID string) bool {
	admin, err := h.roles.IsAdmin(c.Request().Context(), userID)
	if err != nil {
		h.logger.Warn("failed to check roles", "error", err, "user_id", userID)
		return false
	}
	return admin
}

func (h *Handler) requireManager(member *Member) error {
	if member != nil && (!member.Active() || !member.Role.CanManage()) {
		return shared.Forbidden("insufficient_team_role", "only team managers can change members")
	}
	return nil
}

// @Summary      Invite or update a team member
// @Description  New members are invited and join the reporting hierarchy once they accept. Only the owner may grant the manager role or change existing members. System admins add members directly.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "team id"
// @Param        request  body      dto.AddMemberRequest  true  "member"
// @Success      200      {object}  dto.MemberResponse
// @Failure      400      {object}  shared.APIError
// @Failure      403      {object}  shared.APIError
// @Failure      404      {object}  shared.APIError
// @Failure      409      {object}  shared.APIError
// @Security     BearerAuth
// @Router       /teams/{id}/members [post]
func (h *Handler) AddMember(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	t, member, err := h.access(c, userID)
	if err != nil {
		return err
	}
	if err := h.requireManager(member); err != nil {
		return err
	}

	var req dto.AddMemberRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if _, err := uuid.Parse(req.UserID); err != nil {
		return shared.BadRequest("invalid_user_id", "user_id must be a UUID")
	}
	memberRole, ok := ParseMemberRole(req.Role)
	if !ok {
		return shared.NewAPIError("invalid_role", "role must be member or manager").
			WithDetails(map[string]any{"allowed": []MemberRole{MemberRoleMember, MemberRoleManager}}).
			ToHTTP(http.StatusBadRequest)
	}
	if req.UserID == t.OwnerID {
		return shared.BadRequest("owner_required", "the team owner's membership cannot be changed")
	}

	// member is nil only for admins outside the team
	admin := member == nil || h.isAdmin(c, userID)
	owner := admin || userID == t.OwnerID
	if memberRole == MemberRoleManager && !owner {
		return shared.Forbidden("insufficient_team_role", "only the team owner can grant the manager role")
	}

	ctx := c.Request().Context()
	m := &Member{
		TeamID:    t.ID,
		UserID:    req.UserID,
		Role:      memberRole,
		ReportsTo: req.ReportsTo,
	}
	if admin {
		m.Status = MemberStatusActive
		err = h.store.AddMember(ctx, m)
	} else {
		err = h.store.Invite(ctx, m)
		if errors.Is(err, shared.ErrConflict) && owner {
			err = h.store.AddMember(ctx, m)
		}
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidReportsTo):
			return shared.BadRequest("invalid_reports_to", err.Error())
		case errors.Is(err, shared.ErrConflict):
			return shared.Conflict("already_member", "the user is already on this team")
		}
		h.logger.Error("failed to add member", "error", err, "team_id", t.ID, "user_id", req.UserID)
		return shared.InternalError("add_member_failed", "failed to add member")
	}

	if m.Status == MemberStatusPending {
		data := map[string]any{"team_id": t.ID, "team_name": t.Name, "invited_by": userID}
		h.notify(c, m.UserID, notificationTeamInvitation, "You were invited to "+t.Name, data)
	}

	return c.JSON(http.StatusOK, memberToResponse(m))
}

// @Summary      Accept a team invitation
// @Tags         teams
// @Produce      json
// @Param        id   path      string  true  "team id"
// @Success      200  {object}  dto.MemberResponse
// @Failure      404  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /teams/{id}/accept [post]
func (h *Handler) AcceptInvite(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	t, _, err := h.access(c, userID)
	if err != nil {
		return err
	}

	m, err := h.store.Accept(c.Request().Context(), t.ID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("invitation_not_found", "no pending invitation for this team")
		}
		h.logger.Error("failed to accept invitation", "error", err, "team_id", t.ID, "user_id", userID)
		return shared.InternalError("accept_failed", "failed to accept invitation")
	}

	data := map[string]any{"team_id": t.ID, "team_name": t.Name, "user_id": userID}
	h.notify(c, t.OwnerID, notificationTeamMemberJoined, "A new member joined "+t.Name, data)

	return c.JSON(http.StatusOK, memberToResponse(m))
}

func (h *Handler) notify(c echo.Context, userID, kind, title string, data map[string]any) {
	if h.notifier == nil {
		return
	}
	if err := h.notifier.Send(c.Request().Context(), userID, kind, title, "", data); err != nil {
		h.logger.Error("failed to send team notification", "error", err, "kind", kind, "user_id", userID)
	}
}

// @Summary      Remove a team member
// @Tags         teams
// @Param        id      path  string  true  "team id"
// @Param        userId  path  string  true  "member user id"
// @Success      204  "No Content"
// @Failure      403  {object}  shared.APIError
// @Failure      404  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /teams/{id}/members/{userId} [delete]
func (h *Handler) RemoveMember(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	t, member, err := h.access(c, userID)
	if err != nil {
		return err
	}

	target := c.Param("userId")
	// members may leave on their own
	if target != userID {
		if err := h.requireManager(member); err != nil {
			return err
		}
	}
	if target == t.OwnerID {
		return shared.BadRequest("owner_required", "the team owner cannot be removed")
	}

	if err := h.store.RemoveMember(c.Request().Context(), t.ID, target); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("member_not_found", "member not found")
		}
		h.logger.Error("failed to remove member", "error", err, "team_id", t.ID, "user_id", target)
		return shared.InternalError("remove_member_failed", "failed to remove member")
	}
	return c.NoContent(http.StatusNoContent)
}

// @Summary      Get team metrics
// @Description  Per-member snapshots for the members the caller may view, with totals and ratios
// @Tags         teams
// @Produce      json
// @Param        id      path      string  true   "team id"
// @Param        period  query     string  false  "24h, 7d, 30d or custom"
// @Param        from    query     string  false  "YYYY-MM-DD"
// @Param        to      query     string  false  "YYYY-MM-DD"
// @Success      200     {object}  dto.TeamMetricsResponse
// @Failure      400     {object}  shared.APIError
// @Failure      404     {object}  shared.APIError
// @Failure      422     {object}  shared.APIError
// @Security     BearerAuth
// @Router       /teams/{id}/metrics [get]
func (h *Handler) TeamMetrics(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	t, _, err := h.access(c, userID)
	if err != nil {
		return err
	}

	period, r, err := metrics.ParsePeriodQuery(c, h.metrics.Location())
	if err != nil {
		return err
	}
	if period == metrics.PeriodCustom && !r.Complete() {
		return shared.UnprocessableEntity("incomplete_range", "custom period requires from and to dates")
	}

	ctx := c.Request().Context()
	members, err := h.store.Members(ctx, t.ID)
	if err != nil {
		h.logger.Error("failed to list members", "error", err, "team_id", t.ID)
		return shared.InternalError("get_metrics_failed", "failed to get team metrics")
	}
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.UserID
	}

	visible, err := h.permissions.Visible(ctx, userID, ids)
	if err != nil {
		h.logger.Error("failed to resolve hierarchy", "error", err, "user_id", userID)
		return shared.InternalError("get_metrics_failed", "failed to get team metrics")
	}

	snaps := make([]metrics.Snapshot, len(visible))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(metricsFanOut)
	for i, id := range visible {
		g.Go(func() error {
			snap, err := h.metrics.Snapshot(gctx, id, period, r)
			if err != nil {
				return err
			}
			snaps[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.logger.Error("failed to load member metrics", "error", err, "team_id", t.ID)
		return shared.InternalError("get_metrics_failed", "failed to get team metrics")
	}

	profiles := h.profileIndex(c, visible)
	resp := dto.TeamMetricsResponse{
		TeamID:  t.ID,
		Period:  string(period),
		Members: make([]dto.MemberMetrics, len(visible)),
	}
	if period == metrics.PeriodCustom {
		resp.From = shared.FormatDay(r.From)
		resp.To = shared.FormatDay(r.To)
	}

	var totals metrics.Snapshot
	for i, id := range visible {
		totals = totals.Plus(snaps[i])
		resp.Members[i] = dto.MemberMetrics{
			UserID: id,
			Name:   displayName(profiles[id]),
			Counts: metrics.CountersToResponse(snaps[i]),
		}
	}
	resp.Totals = metrics.CountersToResponse(totals)
	resp.Ratios = metrics.RatiosToResponse(metrics.CalculateRatios(totals))

	return c.JSON(http.StatusOK, resp)
}

// @Summary      List my reports
// @Description  Subordinates within the depth allowed by the caller's manager tier
// @Tags         teams
// @Produce      json
// @Success      200  {object}  dto.ReportsResponse
// @Failure      401  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /teams/reports [get]
func (h *Handler) Reports(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	depth, subs, err := h.permissions.Reports(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to resolve hierarchy", "error", err, "user_id", userID)
		return shared.InternalError("get_reports_failed", "failed to get reports")
	}

	ids := make([]string, len(subs))
	for i, s := range subs {
		ids[i] = s.UserID
	}
	profiles := h.profileIndex(c, ids)

	resp := dto.ReportsResponse{Depth: depth, Reports: make([]dto.ReportResponse, len(subs))}
	for i, s := range subs {
		resp.Reports[i] = dto.ReportResponse{
			UserID: s.UserID,
			Name:   displayName(profiles[s.UserID]),
			Level:  s.Level,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// @Summary      Get a user's metrics
// @Description  Allowed for the user, system admins, and managers whose tier reaches the user
// @Tags         metrics
// @Produce      json
// @Param        id      path      string  true   "user id"
// @Param        period  query     string  false  "24h, 7d, 30d or custom"
// @Success      200     {object}  dto.SnapshotResponse
// @Failure      403     {object}  shared.APIError
// @Security     BearerAuth
// @Router       /users/{id}/metrics [get]
func (h *Handler) UserMetrics(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	target := c.Param("id")
	ok, err := h.permissions.CanView(c.Request().Context(), userID, target)
	if err != nil {
		h.logger.Error("failed to check permissions", "error", err, "user_id", userID, "target", target)
		return shared.InternalError("permission_check_failed", "failed to check permissions")
	}
	if !ok {
		return shared.Forbidden("forbidden", "you cannot view this user's metrics")
	}

	return h.metricsView.WriteSnapshotFor(c, target)
}
