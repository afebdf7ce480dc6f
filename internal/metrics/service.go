package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/nkp491/surehelp/internal/shared"
)

const (
	EventMetricsUpdated = "metrics.updated"

	maxHistoryDays = 366
)

// ErrCounterOverflow is returned when an increment would push a counter past
// the int64 range.
var ErrCounterOverflow = fmt.Errorf("%w: counter overflow", shared.ErrInvalidInput)

// EventPublisher pushes realtime events to a user's open dashboards.
type EventPublisher interface {
	Publish(ctx context.Context, userID, eventType string, payload any) error
}

type ServiceConfig struct {
	Repo     Repository
	Daily    *DailyStore
	Events   EventPublisher
	Location *time.Location
	Now      func() time.Time
	Log      *slog.Logger
}

type Service struct {
	repo   Repository
	daily  *DailyStore
	agg    *Aggregator
	events EventPublisher
	now    func() time.Time
	logger *slog.Logger

	locks *keyedMutex
}

func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	logger := cfg.Log
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "metrics")

	return &Service{
		repo:   cfg.Repo,
		daily:  cfg.Daily,
		agg:    NewAggregator(cfg.Repo, cfg.Daily, cfg.Location, now, logger),
		events: cfg.Events,
		now:    now,
		logger: logger,
		locks:  newKeyedMutex(),
	}
}

// lock serializes writes for one user within this process.
func (s *Service) lock(userID string) func() {
	return s.locks.Lock(userID)
}

func (s *Service) Today() time.Time {
	return s.agg.Today()
}

func (s *Service) Location() *time.Location {
	return s.agg.Location()
}

// Snapshot returns the counters for a period. For custom periods r may be nil,
// in which case the range of the user's active custom selection is used.
func (s *Service) Snapshot(ctx context.Context, userID string, p Period, r *DateRange) (Snapshot, error) {
	if p.IsWindow() {
		return s.agg.Current(ctx, userID, p)
	}
	if p != PeriodCustom {
		return Snapshot{}, ErrUnknownPeriod
	}

	if r == nil {
		sel, err := s.Selection(ctx, userID)
		if err != nil {
			return Snapshot{}, err
		}
		if sel.Active == PeriodCustom {
			r = sel.Range
		}
	}
	if !r.Complete() {
		return Snapshot{}, ErrIncompleteRange
	}
	return s.agg.Custom(ctx, userID, *r)
}

func (s *Service) Ratios(ctx context.Context, userID string, p Period, r *DateRange) (Snapshot, []Ratio, error) {
	snap, err := s.Snapshot(ctx, userID, p, r)
	if err != nil {
		return Snapshot{}, nil, err
	}
	return snap, CalculateRatios(snap), nil
}

// Increment moves today's counter up by steps * field.Step().
func (s *Service) Increment(ctx context.Context, userID string, field Field, steps int64) (Snapshot, error) {
	return s.adjust(ctx, userID, field, steps)
}

// Decrement moves today's counter down by steps * field.Step(), stopping at zero.
func (s *Service) Decrement(ctx context.Context, userID string, field Field, steps int64) (Snapshot, error) {
	return s.adjust(ctx, userID, field, -steps)
}

func (s *Service) adjust(ctx context.Context, userID string, field Field, steps int64) (Snapshot, error) {
	if steps == 0 {
		return Snapshot{}, shared.ErrInvalidInput
	}

	unlock := s.lock(userID)
	defer unlock()

	today, err := s.agg.Current(ctx, userID, Period24h)
	if err != nil {
		return Snapshot{}, err
	}

	value, err := stepValue(today.Get(field), steps, field.Step())
	if err != nil {
		return Snapshot{}, err
	}
	return s.apply(ctx, userID, field, value)
}

// stepValue moves current by steps*step. Decrements stop at zero; increments
// that leave the int64 range fail with ErrCounterOverflow.
func stepValue(current, steps, step int64) (int64, error) {
	if steps > 0 {
		if steps > (math.MaxInt64-current)/step {
			return 0, ErrCounterOverflow
		}
		return current + steps*step, nil
	}
	if steps < -(current / step) {
		return 0, nil
	}
	return current + steps*step, nil
}

// SetValue replaces today's value of field. AP values are in cents.
func (s *Service) SetValue(ctx context.Context, userID string, field Field, value int64) (Snapshot, error) {
	if value < 0 {
		return Snapshot{}, shared.ErrInvalidInput
	}

	unlock := s.lock(userID)
	defer unlock()

	return s.apply(ctx, userID, field, value)
}

func (s *Service) apply(ctx context.Context, userID string, field Field, value int64) (Snapshot, error) {
	snap, err := s.agg.Apply(ctx, userID, field, value)
	if err != nil {
		return Snapshot{}, err
	}

	s.publish(ctx, userID, map[string]any{
		"period": Period24h,
		"field":  field,
		"value":  snap.Get(field),
		"date":   shared.FormatDay(s.Today()),
	})
	return snap, nil
}

// UpdateDay replaces every counter of a past or current day and rebuilds the
// rolling windows from history.
func (s *Service) UpdateDay(ctx context.Context, userID string, day time.Time, snap Snapshot) (*DailyMetric, error) {
	day = shared.Day(day, s.Location())
	if day.After(s.Today()) {
		return nil, shared.ErrInvalidInput
	}
	if !validSnapshot(snap) {
		return nil, shared.ErrInvalidInput
	}

	unlock := s.lock(userID)
	defer unlock()

	row := &DailyMetric{UserID: userID, Date: shared.FormatDay(day)}
	row.SetSnapshot(snap)
	if err := s.daily.Upsert(ctx, row); err != nil {
		return nil, err
	}

	if _, err := s.agg.Rebuild(ctx, userID); err != nil {
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"date": row.Date,
	})
	return row, nil
}

func (s *Service) Selection(ctx context.Context, userID string) (Selection, error) {
	sel, err := s.repo.LoadSelection(ctx, userID)
	switch {
	case err == nil:
		return *sel, nil
	case errors.Is(err, shared.ErrNotFound):
		return DefaultSelection(), nil
	case errors.Is(err, ErrCorruptSnapshot):
		s.logger.Warn("resetting corrupt period selection", "error", err, "user_id", userID)
		return DefaultSelection(), nil
	}
	return Selection{}, err
}

// SelectPeriod switches the active period, capturing the metrics of the
// current period as the previous snapshot. changed is false when the request
// was a no-op (custom without a complete range).
func (s *Service) SelectPeriod(ctx context.Context, userID string, p Period, r *DateRange) (sel Selection, changed bool, err error) {
	unlock := s.lock(userID)
	defer unlock()

	sel, err = s.Selection(ctx, userID)
	if err != nil {
		return Selection{}, false, err
	}

	if p == PeriodCustom && !r.Complete() {
		return sel, false, nil
	}

	current, err := s.activeSnapshot(ctx, userID, sel)
	if err != nil {
		return Selection{}, false, err
	}

	selector := NewSelector(sel)
	if !selector.Select(p, r, current, s.now()) {
		return sel, false, nil
	}

	next := selector.State()
	if err := s.repo.SaveSelection(ctx, userID, &next); err != nil {
		return Selection{}, false, err
	}
	return next, true, nil
}

func (s *Service) activeSnapshot(ctx context.Context, userID string, sel Selection) (Snapshot, error) {
	snap, err := s.Snapshot(ctx, userID, sel.Active, sel.Range)
	if errors.Is(err, ErrIncompleteRange) || errors.Is(err, ErrUnknownPeriod) {
		return Snapshot{}, nil
	}
	return snap, err
}

// Trend compares the active period's metrics with the snapshot captured when
// the period was last switched.
func (s *Service) Trend(ctx context.Context, userID string) (Selection, []TrendDelta, error) {
	sel, err := s.Selection(ctx, userID)
	if err != nil {
		return Selection{}, nil, err
	}

	current, err := s.activeSnapshot(ctx, userID, sel)
	if err != nil {
		return Selection{}, nil, err
	}
	return sel, ComputeTrend(current, sel.Previous), nil
}

func (s *Service) History(ctx context.Context, userID string, r *DateRange) ([]*DailyMetric, Snapshot, error) {
	if !r.Complete() {
		return nil, Snapshot{}, ErrIncompleteRange
	}
	if r.To.Sub(r.From) > maxHistoryDays*24*time.Hour {
		return nil, Snapshot{}, shared.ErrInvalidInput
	}

	from, to := shared.FormatDay(r.From), shared.FormatDay(r.To)
	rows, err := s.daily.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, Snapshot{}, err
	}

	var total Snapshot
	for _, row := range rows {
		total = total.Plus(row.Snapshot())
	}
	return rows, total, nil
}

// Reset drops the cached snapshots and selection; history is kept.
func (s *Service) Reset(ctx context.Context, userID string) error {
	unlock := s.lock(userID)
	defer unlock()

	return s.repo.Reset(ctx, userID)
}

func (s *Service) Rebuild(ctx context.Context, userID string) (map[Period]Snapshot, error) {
	unlock := s.lock(userID)
	defer unlock()

	return s.agg.Rebuild(ctx, userID)
}

func (s *Service) publish(ctx context.Context, userID string, payload map[string]any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, userID, EventMetricsUpdated, payload); err != nil {
		s.logger.Error("failed to publish metrics event", "error", err, "user_id", userID)
	}
}
