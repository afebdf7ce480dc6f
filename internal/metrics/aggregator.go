package metrics

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nkp491/surehelp/internal/shared"
)

// Aggregator keeps the cached 24h, 7d and 30d snapshots in step with the
// daily_metrics history. Cached windows are tagged with the day they were
// computed for; a window from an earlier day, a missing one, or a corrupt
// one is rebuilt from history.
type Aggregator struct {
	repo   Repository
	daily  *DailyStore
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger
}

func NewAggregator(repo Repository, daily *DailyStore, loc *time.Location, now func() time.Time, logger *slog.Logger) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Aggregator{
		repo:   repo,
		daily:  daily,
		loc:    loc,
		now:    now,
		logger: logger,
	}
}

func (a *Aggregator) Today() time.Time {
	return shared.Day(a.now(), a.loc)
}

func (a *Aggregator) Location() *time.Location {
	return a.loc
}

func (a *Aggregator) Current(ctx context.Context, userID string, p Period) (Snapshot, error) {
	if !p.IsWindow() {
		return Snapshot{}, ErrUnknownPeriod
	}
	return a.current(ctx, userID, p, a.Today())
}

func (a *Aggregator) current(ctx context.Context, userID string, p Period, today time.Time) (Snapshot, error) {
	rec, err := a.load(ctx, userID, p)
	if err != nil {
		return Snapshot{}, err
	}
	if rec != nil && rec.Day == shared.FormatDay(today) {
		return rec.Snapshot, nil
	}
	return a.rebuild(ctx, userID, p, today)
}

// load returns nil without error when the cached window must be rebuilt.
func (a *Aggregator) load(ctx context.Context, userID string, p Period) (*Record, error) {
	rec, err := a.repo.Load(ctx, userID, string(p))
	switch {
	case err == nil:
		return rec, nil
	case errors.Is(err, shared.ErrNotFound):
		return nil, nil
	case errors.Is(err, ErrCorruptSnapshot):
		a.logger.Warn("rebuilding corrupt metrics snapshot", "error", err, "user_id", userID, "period", p)
		return nil, nil
	}
	return nil, err
}

func (a *Aggregator) rebuild(ctx context.Context, userID string, p Period, today time.Time) (Snapshot, error) {
	from, to := p.Bounds(today)
	snap, err := a.daily.SumRange(ctx, userID, shared.FormatDay(from), shared.FormatDay(to))
	if err != nil {
		return Snapshot{}, err
	}

	rec := &Record{Snapshot: snap, Day: shared.FormatDay(today), UpdatedAt: a.now()}
	if err := a.repo.Save(ctx, userID, string(p), rec); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Custom returns the snapshot of a complete date range, summing history on
// a cache miss. Cached ranges are dropped whenever history changes.
func (a *Aggregator) Custom(ctx context.Context, userID string, r DateRange) (Snapshot, error) {
	key := r.Key()
	rec, err := a.repo.Load(ctx, userID, key)
	switch {
	case err == nil:
		return rec.Snapshot, nil
	case errors.Is(err, ErrCorruptSnapshot):
		a.logger.Warn("rebuilding corrupt metrics snapshot", "error", err, "user_id", userID, "period", key)
	case !errors.Is(err, shared.ErrNotFound):
		return Snapshot{}, err
	}

	snap, err := a.daily.SumRange(ctx, userID, shared.FormatDay(r.From), shared.FormatDay(r.To))
	if err != nil {
		return Snapshot{}, err
	}
	rec = &Record{Snapshot: snap, Day: shared.FormatDay(a.Today()), UpdatedAt: a.now()}
	if err := a.repo.Save(ctx, userID, key, rec); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Rebuild recomputes every rolling window from history and forgets cached
// custom ranges.
func (a *Aggregator) Rebuild(ctx context.Context, userID string) (map[Period]Snapshot, error) {
	if err := a.repo.DropCustom(ctx, userID); err != nil {
		return nil, err
	}
	today := a.Today()
	out := make(map[Period]Snapshot, len(Windows))
	for _, p := range Windows {
		snap, err := a.rebuild(ctx, userID, p, today)
		if err != nil {
			return nil, err
		}
		out[p] = snap
	}
	return out, nil
}

// Apply sets today's value of field and propagates the difference from the
// previously applied value into the 7d and 30d windows, so each day counts
// exactly once no matter how often it is edited.
func (a *Aggregator) Apply(ctx context.Context, userID string, field Field, value int64) (Snapshot, error) {
	if value < 0 {
		value = 0
	}
	today := a.Today()
	day := shared.FormatDay(today)

	daily, err := a.current(ctx, userID, Period24h, today)
	if err != nil {
		return Snapshot{}, err
	}

	delta := value - daily.Get(field)
	daily.Set(field, value)

	row := &DailyMetric{UserID: userID, Date: day}
	row.SetSnapshot(daily)
	if err := a.daily.Upsert(ctx, row); err != nil {
		return Snapshot{}, err
	}
	if err := a.repo.DropCustom(ctx, userID); err != nil {
		return Snapshot{}, err
	}

	rec := &Record{Snapshot: daily, Day: day, UpdatedAt: a.now()}
	if err := a.repo.Save(ctx, userID, string(Period24h), rec); err != nil {
		return Snapshot{}, err
	}

	if delta == 0 {
		return daily, nil
	}

	for _, p := range []Period{Period7d, Period30d} {
		if err := a.roll(ctx, userID, p, field, delta, today); err != nil {
			return Snapshot{}, err
		}
	}
	return daily, nil
}

func (a *Aggregator) roll(ctx context.Context, userID string, p Period, field Field, delta int64, today time.Time) error {
	rec, err := a.load(ctx, userID, p)
	if err != nil {
		return err
	}

	if rec == nil || rec.Day != shared.FormatDay(today) {
		// history already holds the new daily value
		_, err := a.rebuild(ctx, userID, p, today)
		return err
	}

	rec.Snapshot.Add(field, delta)
	rec.UpdatedAt = a.now()
	return a.repo.Save(ctx, userID, string(p), rec)
}
