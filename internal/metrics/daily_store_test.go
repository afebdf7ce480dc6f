package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/nkp491/surehelp/internal/shared"
)

func TestDailyStore_Migrate(t *testing.T) {
	db := setupTestMetricsDB(t)
	store := NewDailyStore(db)

	if err := store.Migrate(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	if !db.Migrator().HasTable("daily_metrics") {
		t.Error("daily_metrics table should exist after migration")
	}
}

func TestDailyStore_UpsertReplaces(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedDay(t, testUser, "2024-03-10", Snapshot{Leads: 2, AP: 100})
	env.seedDay(t, testUser, "2024-03-10", Snapshot{Leads: 5})

	row, err := env.daily.Get(ctx, testUser, "2024-03-10")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if row.Leads != 5 || row.AP != 0 {
		t.Errorf("expected replaced counters, got %+v", row.Snapshot())
	}

	var count int64
	env.db.Model(&DailyMetric{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}
}

func TestDailyStore_GetMissing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.daily.Get(context.Background(), testUser, "2024-03-10")
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDailyStore_SumAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	other := "0e0d6c1a-1111-4222-8333-444455556666"

	env.seedDay(t, testUser, "2024-03-01", Snapshot{Leads: 1, Calls: 2, AP: 100})
	env.seedDay(t, testUser, "2024-03-05", Snapshot{Leads: 3, Sales: 1, AP: 50000})
	env.seedDay(t, testUser, "2024-03-10", Snapshot{Leads: 10})
	env.seedDay(t, other, "2024-03-05", Snapshot{Leads: 100})

	total, err := env.daily.SumRange(ctx, testUser, "2024-03-01", "2024-03-05")
	if err != nil {
		t.Fatalf("sum failed: %v", err)
	}
	want := Snapshot{Leads: 4, Calls: 2, Sales: 1, AP: 50100}
	if total != want {
		t.Errorf("expected %+v, got %+v", want, total)
	}

	empty, err := env.daily.SumRange(ctx, testUser, "2023-01-01", "2023-01-31")
	if err != nil {
		t.Fatalf("sum of empty range failed: %v", err)
	}
	if !empty.IsZero() {
		t.Errorf("expected zero snapshot, got %+v", empty)
	}

	rows, err := env.daily.ListRange(ctx, testUser, "2024-03-01", "2024-03-31")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 3 || rows[0].Date != "2024-03-01" || rows[2].Date != "2024-03-10" {
		t.Errorf("expected 3 rows in date order, got %d", len(rows))
	}

	byUser, err := env.daily.SumRangeForUsers(ctx, []string{testUser, other, "missing"}, "2024-03-01", "2024-03-31")
	if err != nil {
		t.Fatalf("sum for users failed: %v", err)
	}
	if byUser[testUser].Leads != 14 || byUser[other].Leads != 100 {
		t.Errorf("unexpected per-user totals %+v", byUser)
	}
	if _, ok := byUser["missing"]; ok {
		t.Error("users without history should be omitted")
	}

	users, err := env.daily.DistinctUsers(ctx, "2024-03-02")
	if err != nil {
		t.Fatalf("distinct users failed: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %v", users)
	}
}
