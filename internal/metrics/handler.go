package metrics

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nkp491/surehelp/internal/auth"
	"github.com/nkp491/surehelp/internal/dto"
	"github.com/nkp491/surehelp/internal/shared"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes mounts the read routes and, with writeMiddleware applied,
// the routes that change counters.
func (h *Handler) RegisterRoutes(g *echo.Group, writeMiddleware ...echo.MiddlewareFunc) {
	g.GET("", h.GetSnapshot)
	g.GET("/ratios", h.GetRatios)
	g.GET("/selection", h.GetSelection)
	g.GET("/trend", h.GetTrend)
	g.GET("/history", h.GetHistory)

	g.PUT("/selection", h.SelectPeriod, writeMiddleware...)
	g.PUT("/history/:date", h.UpdateDay, writeMiddleware...)
	g.POST("/:field/increment", h.Increment, writeMiddleware...)
	g.POST("/:field/decrement", h.Decrement, writeMiddleware...)
	g.PUT("/:field", h.SetCounter, writeMiddleware...)
	g.DELETE("", h.Reset, writeMiddleware...)
	g.POST("/rebuild", h.Rebuild, writeMiddleware...)
}

func CountersToResponse(s Snapshot) dto.Counters {
	return dto.Counters{
		Leads:     s.Leads,
		Calls:     s.Calls,
		Contacts:  s.Contacts,
		Scheduled: s.Scheduled,
		Sits:      s.Sits,
		Sales:     s.Sales,
		AP:        s.AP,
		APDisplay: FormatCents(s.AP),
	}
}

func RatiosToResponse(ratios []Ratio) []dto.RatioResponse {
	out := make([]dto.RatioResponse, len(ratios))
	for i, r := range ratios {
		out[i] = dto.RatioResponse{Key: r.Key, Label: r.Label, Value: r.Value}
	}
	return out
}

func selectionToResponse(sel Selection, changed bool) dto.SelectionResponse {
	resp := dto.SelectionResponse{
		Active:         string(sel.Active),
		PreviousPeriod: string(sel.PreviousPeriod),
		Previous:       CountersToResponse(sel.Previous),
		Changed:        changed,
	}
	if sel.Range != nil {
		resp.From = shared.FormatDay(sel.Range.From)
		resp.To = shared.FormatDay(sel.Range.To)
	}
	if !sel.ChangedAt.IsZero() {
		resp.ChangedAt = sel.ChangedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// ParsePeriodQuery reads ?period=&from=&to= from the request.
func ParsePeriodQuery(c echo.Context, loc *time.Location) (Period, *DateRange, error) {
	period, err := ParsePeriod(c.QueryParam("period"))
	if err != nil {
		return "", nil, shared.BadRequest("invalid_period", "period must be one of 24h, 7d, 30d, custom")
	}

	var r *DateRange
	if c.QueryParam("from") != "" || c.QueryParam("to") != "" {
		r, err = ParseRange(c.QueryParam("from"), c.QueryParam("to"), loc)
		if err != nil {
			return "", nil, shared.BadRequest("invalid_date", "dates must use YYYY-MM-DD")
		}
	}
	return period, r, nil
}

func (h *Handler) snapshotError(err error, userID string) error {
	switch {
	case errors.Is(err, ErrIncompleteRange):
		return shared.UnprocessableEntity("incomplete_range", "custom period requires from and to dates")
	case errors.Is(err, ErrUnknownPeriod):
		return shared.BadRequest("invalid_period", "period must be one of 24h, 7d, 30d, custom")
	case errors.Is(err, shared.ErrInvalidInput):
		return shared.BadRequest("invalid_value", "invalid value")
	}
	h.logger.Error("failed to load metrics", "error", err, "user_id", userID)
	return shared.InternalError("get_metrics_failed", "failed to get metrics")
}

// GetSnapshot godoc
// @Summary      Get metrics for a period
// @Description  Returns the counters and derived ratios for 24h, 7d, 30d or a custom range
// @Tags         metrics
// @Produce      json
// @Param        period  query     string  false  "24h, 7d, 30d or custom"
// @Param        from    query     string  false  "custom range start (YYYY-MM-DD)"
// @Param        to      query     string  false  "custom range end (YYYY-MM-DD)"
// @Success      200     {object}  dto.SnapshotResponse
// @Failure      400     {object}  shared.APIError
// @Failure      401     {object}  shared.APIError
// @Failure      422     {object}  shared.APIError
// @Security     BearerAuth
// @Router       /metrics [get]
func (h *Handler) GetSnapshot(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	return h.writeSnapshot(c, userID)
}

// WriteSnapshotFor renders the metrics of userID for the request's period
// query. Used by routes that read another user's metrics after their own
// permission checks.
func (h *Handler) WriteSnapshotFor(c echo.Context, userID string) error {
	return h.writeSnapshot(c, userID)
}

func (h *Handler) writeSnapshot(c echo.Context, userID string) error {
	period, r, err := ParsePeriodQuery(c, h.service.Location())
	if err != nil {
		return err
	}

	snap, ratios, err := h.service.Ratios(c.Request().Context(), userID, period, r)
	if err != nil {
		return h.snapshotError(err, userID)
	}

	resp := dto.SnapshotResponse{
		Period: string(period),
		Counts: CountersToResponse(snap),
		Ratios: RatiosToResponse(ratios),
	}
	if period == PeriodCustom && r != nil {
		resp.From = shared.FormatDay(r.From)
		resp.To = shared.FormatDay(r.To)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetRatios godoc
// @Summary      Get conversion ratios
// @Tags         metrics
// @Produce      json
// @Param        period  query     string  false  "24h, 7d, 30d or custom"
// @Success      200     {object}  dto.RatiosResponse
// @Failure      400     {object}  shared.APIError
// @Failure      401     {object}  shared.APIError
// @Security     BearerAuth
// @Router       /metrics/ratios [get]
func (h *Handler) GetRatios(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	period, r, err := ParsePeriodQuery(c, h.service.Location())
	if err != nil {
		return err
	}

	_, ratios, err := h.service.Ratios(c.Request().Context(), userID, period, r)
	if err != nil {
		return h.snapshotError(err, userID)
	}

	return c.JSON(http.StatusOK, dto.RatiosResponse{
		Period: string(period),
		Ratios: RatiosToResponse(ratios),
	})
}

func (h *Handler) parseField(c echo.Context) (Field, error) {
	field, err := ParseField(c.Param("field"))
	if err != nil {
		return "", shared.BadRequest("invalid_field", "unknown metric field")
	}
	return field, nil
}

func (h *Handler) counterResponse(c echo.Context, field Field, snap Snapshot) error {
	return c.JSON(http.StatusOK, dto.CounterResponse{
		Field:  string(field),
		Value:  snap.Get(field),
		Date:   shared.FormatDay(h.service.Today()),
		Counts: CountersToResponse(snap),
	})
}

func (h *Handler) adjust(c echo.Context, decrement bool) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	field, err := h.parseField(c)
	if err != nil {
		return err
	}

	req := dto.AdjustCounterRequest{Steps: 1}
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return shared.BadRequest("invalid_request", "invalid request body")
		}
	}
	if req.Steps < 1 {
		return shared.BadRequest("invalid_steps", "steps must be a positive integer")
	}

	ctx := c.Request().Context()
	var snap Snapshot
	if decrement {
		snap, err = h.service.Decrement(ctx, userID, field, req.Steps)
	} else {
		snap, err = h.service.Increment(ctx, userID, field, req.Steps)
	}
	if errors.Is(err, ErrCounterOverflow) {
		return shared.BadRequest("invalid_steps", "steps would overflow the counter")
	}
	if err != nil {
		h.logger.Error("failed to update metric", "error", err, "user_id", userID, "field", field)
		return shared.InternalError("update_failed", "failed to update metric")
	}

	return h.counterResponse(c, field, snap)
}

// Increment godoc
// @Summary      Increment a counter
// @Description  Adds steps to today's counter. AP moves 100 cents per step.
// @Tags         metrics
// @Accept       json
// @Produce      json
// @Param        field    path      string                    true   "leads, calls, contacts, scheduled, sits, sales or ap"
// @Param        request  body      dto.AdjustCounterRequest  false  "number of steps"
// @Success      200      {object}  dto.CounterResponse
// @Failure      400      {object}  shared.APIError
// @Failure      401      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Security     BearerAuth
// @Router       /metrics/{field}/increment [post]
func (h *Handler) Increment(c echo.Context) error {
	return h.adjust(c, false)
}

// Decrement godoc
// @Summary      Decrement a counter
// @Description  Subtracts steps from today's counter, stopping at zero.
// @Tags         metrics
// @Accept       json
// @Produce      json
// @Param        field    path      string                    true   "metric field"
// @Param        request  body      dto.AdjustCounterRequest  false  "number of steps"
// @Success      200      {object}  dto.CounterResponse
// @Failure      400      {object}  shared.APIError
// @Failure      401      {object}  shared.APIError
// @Security     BearerAuth
// @Router       /metrics/{field}/decrement [post]
func (h *Handler) Decrement(c echo.Context) error {
	return h.adjust(c, true)
}

// SetCounter godoc
// @Summary      Set today's counter
// @Tags         metrics
// @Accept       json
// @Produce      json
// @Param        field    path      string                 true  "metric field"
// @Param        request  body      dto.SetCounterRequest  true  "new value (AP in cents)"
// @Success      200      {object}  dto.CounterResponse
// @Failure      400      {object}  shared.APIError
// @Failure      401      {object}  shared.APIError
// @Security     BearerAuth
// @Router       /metrics/{field} [put]
func (h *Handler) SetCounter(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	field, err := h.parseField(c)
	if err != nil {
		return err
	}

	var req dto.SetCounterRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if req.Value == nil || *req.Value < 0 {
		return shared.BadRequest("invalid_value", "value must be a non-negative integer")
	}

	snap, err := h.service.SetValue(c.Request().Context(), userID, field, *req.Value)
	if err != nil {
		h.logger.Error("failed to set metric", "error", err, "user_id", userID, "field", field)
		return shared.InternalError("update_failed", "failed to update metric")
	}

	return h.counterResponse(c, field, snap)
}

// UpdateDay godoc
// @Summary      Replace a day's counters
// @Tags         metrics
// @Accept       json
// @Produce      json
// @Param        date     path      string          true  "day (YYYY-MM-DD), not in the future"
// @Param        request  body      dto.DayRequest  true  "counters"
// @Success      200      {object}  dto.DayResponse
// @Failure      400      {object}  shared.APIError
// @Failure      401      {object}  shared.APIError
// @Security     BearerAuth
// @Router       /metrics/history/{date} [put]
func (h *Handler) UpdateDay(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	day, err := shared.ParseDay(c.Param("date"), h.service.Location())
	if err != nil {
		return shared.BadRequest("invalid_date", "dates must use YYYY-MM-DD")
	}

	var req dto.DayRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	snap := Snapshot{
		Leads:     req.Leads,
		Calls:     req.Calls,
		Contacts:  req.Contacts,
		Scheduled: req.Scheduled,
		Sits:      req.Sits,
		Sales:     req.Sales,
		AP:        req.AP,
	}

	row, err := h.service.UpdateDay(c.Request().Context(), userID, day, snap)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidInput) {
			return shared.BadRequest("invalid_day", "counters must be non-negative and the day cannot be in the future")
		}
		h.logger.Error("failed to update day", "error", err, "user_id", userID, "date", c.Param("date"))
		return shared.InternalError("update_failed", "failed to update day")
	}

	return c.JSON(http.StatusOK, dto.DayResponse{
		Date:   row.Date,
		Counts: CountersToResponse(row.Snapshot()),
	})
}

// GetSelection godoc
// @Summary      Get the active period selection
// @Tags         metrics
// @Produce      json
// @Success      200  {object}  dto.SelectionResponse
// @Failure      401  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /metrics/selection [get]
func (h *Handler) GetSelection(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	sel, err := h.service.Selection(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to load selection", "error", err, "user_id", userID)
		return shared.InternalError("get_selection_failed", "failed to get period selection")
	}

	return c.JSON(http.StatusOK, selectionToResponse(sel, false))
}

// SelectPeriod godoc
// @Summary      Switch the active period
// @Description  Captures the current metrics as the previous snapshot, then switches. A custom period without a complete range is a no-op.
// @Tags         metrics
// @Accept       json
// @Produce      json
// @Param        request  body      dto.SelectionRequest  true  "period and optional range"
// @Success      200      {object}  dto.SelectionResponse
// @Failure      400      {object}  shared.APIError
// @Failure      401      {object}  shared.APIError
// @Security     BearerAuth
// @Router       /metrics/selection [put]
func (h *Handler) SelectPeriod(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req dto.SelectionRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	period, err := ParsePeriod(req.Period)
	if err != nil {
		return shared.BadRequest("invalid_period", "period must be one of 24h, 7d, 30d, custom")
	}

	var r *DateRange
	if period == PeriodCustom {
		r, err = ParseRange(req.From, req.To, h.service.Location())
		if err != nil {
			return shared.BadRequest("invalid_date", "dates must use YYYY-MM-DD")
		}
	}

	sel, changed, err := h.service.SelectPeriod(c.Request().Context(), userID, period, r)
	if err != nil {
		h.logger.Error("failed to switch period", "error", err, "user_id", userID, "period", period)
		return shared.InternalError("select_failed", "failed to switch period")
	}

	return c.JSON(http.StatusOK, selectionToResponse(sel, changed))
}

// GetTrend godoc
// @Summary      Get trend deltas
// @Description  Percentage change between the active period and the snapshot captured at the last switch
// @Tags         metrics
// @Produce      json
// @Success      200  {object}  dto.TrendResponse
// @Failure      401  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /metrics/trend [get]
func (h *Handler) GetTrend(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	sel, deltas, err := h.service.Trend(c.Request().Context(), userID)
	if err != nil {
		return h.snapshotError(err, userID)
	}

	resp := dto.TrendResponse{
		Period:         string(sel.Active),
		PreviousPeriod: string(sel.PreviousPeriod),
		Deltas:         make([]dto.TrendDeltaResponse, len(deltas)),
	}
	for i, d := range deltas {
		resp.Deltas[i] = dto.TrendDeltaResponse{
			Field:    string(d.Field),
			Current:  d.Current,
			Previous: d.Previous,
			Percent:  d.Percent,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// GetHistory godoc
// @Summary      List daily history
// @Tags         metrics
// @Produce      json
// @Param        from  query     string  true  "YYYY-MM-DD"
// @Param        to    query     string  true  "YYYY-MM-DD"
// @Success      200   {object}  dto.HistoryResponse
// @Failure      400   {object}  shared.APIError
// @Failure      401   {object}  shared.APIError
// @Failure      422   {object}  shared.APIError
// @Security     BearerAuth
// @Router       /metrics/history [get]
func (h *Handler) GetHistory(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	r, err := ParseRange(c.QueryParam("from"), c.QueryParam("to"), h.service.Location())
	if err != nil {
		return shared.BadRequest("invalid_date", "dates must use YYYY-MM-DD")
	}

	rows, total, err := h.service.History(c.Request().Context(), userID, r)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidInput) {
			return shared.BadRequest("range_too_large", "history is limited to one year per request")
		}
		return h.snapshotError(err, userID)
	}

	resp := dto.HistoryResponse{
		From:   shared.FormatDay(r.From),
		To:     shared.FormatDay(r.To),
		Days:   make([]dto.DayResponse, len(rows)),
		Totals: CountersToResponse(total),
	}
	for i, row := range rows {
		resp.Days[i] = dto.DayResponse{Date: row.Date, Counts: CountersToResponse(row.Snapshot())}
	}
	return c.JSON(http.StatusOK, resp)
}

// Reset godoc
// @Summary      Reset cached snapshots
// @Description  Drops cached period snapshots and the period selection. Daily history is kept.
// @Tags         metrics
// @Success      204  "No Content"
// @Failure      401  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /metrics [delete]
func (h *Handler) Reset(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	if err := h.service.Reset(c.Request().Context(), userID); err != nil {
		h.logger.Error("failed to reset metrics", "error", err, "user_id", userID)
		return shared.InternalError("reset_failed", "failed to reset metrics")
	}
	return c.NoContent(http.StatusNoContent)
}

// Rebuild godoc
// @Summary      Rebuild rolling windows from history
// @Tags         metrics
// @Produce      json
// @Success      200  {object}  dto.RebuildResponse
// @Failure      401  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /metrics/rebuild [post]
func (h *Handler) Rebuild(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	windows, err := h.service.Rebuild(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to rebuild metrics", "error", err, "user_id", userID)
		return shared.InternalError("rebuild_failed", "failed to rebuild metrics")
	}

	resp := dto.RebuildResponse{Windows: make(map[string]dto.Counters, len(windows))}
	for p, snap := range windows {
		resp.Windows[string(p)] = CountersToResponse(snap)
	}
	return c.JSON(http.StatusOK, resp)
}
