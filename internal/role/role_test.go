package role

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nkp491/surehelp/internal/shared"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	userA = "6f1c2a7e-3b4d-4c5e-8f90-123456789abc"
	userB = "0e0d6c1a-1111-4222-8333-444455556666"
)

func setupTestRoleDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return db
}

func newTestChecker(t *testing.T) (*Checker, *miniredis.Miniredis) {
	store := NewStore(setupTestRoleDB(t))
	if err := store.Migrate(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewChecker(store, NewCache(client, time.Minute), 5, logger), mr
}

func TestParse(t *testing.T) {
	for _, r := range All {
		got, err := Parse(string(r))
		if err != nil || got != r {
			t.Errorf("Parse(%q) = %q, %v", r, got, err)
		}
	}
	if _, err := Parse("owner"); !errors.Is(err, ErrUnknownRole) {
		t.Errorf("expected ErrUnknownRole, got %v", err)
	}
}

func TestDepthFor(t *testing.T) {
	tests := []struct {
		name     string
		roles    []Role
		maxDepth int
		want     int
	}{
		{"no roles", nil, 5, 0},
		{"agent", []Role{Agent}, 5, 0},
		{"pro", []Role{Agent, ManagerPro}, 5, 1},
		{"gold", []Role{ManagerProGold}, 5, 2},
		{"platinum", []Role{ManagerPro, ManagerProPlatinum}, 5, 3},
		{"platinum capped", []Role{ManagerProPlatinum}, 2, 2},
		{"admin", []Role{BetaUser, SystemAdmin}, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DepthFor(tt.roles, tt.maxDepth); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestChecker_GrantRevoke(t *testing.T) {
	checker, _ := newTestChecker(t)
	ctx := context.Background()

	if err := checker.Grant(ctx, userA, ManagerProGold, userB); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if err := checker.Grant(ctx, userA, ManagerProGold, userB); err != nil {
		t.Fatalf("second grant should be a no-op, got %v", err)
	}
	checker.Grant(ctx, userA, Agent, userB)

	roles, err := checker.Roles(ctx, userA)
	if err != nil {
		t.Fatalf("roles failed: %v", err)
	}
	if len(roles) != 2 {
		t.Fatalf("expected 2 roles, got %v", roles)
	}

	depth, _ := checker.HierarchyDepth(ctx, userA)
	if depth != 2 {
		t.Errorf("expected depth 2, got %d", depth)
	}

	if err := checker.Revoke(ctx, userA, ManagerProGold); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if err := checker.Revoke(ctx, userA, ManagerProGold); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second revoke, got %v", err)
	}

	ok, _ := checker.HasAny(ctx, userA, Managers...)
	if ok {
		t.Error("revoked role should no longer be reported")
	}
}

func TestChecker_ReadsThroughCache(t *testing.T) {
	checker, mr := newTestChecker(t)
	ctx := context.Background()

	checker.Grant(ctx, userA, ManagerPro, userB)
	if _, err := checker.Roles(ctx, userA); err != nil {
		t.Fatalf("roles failed: %v", err)
	}
	if !mr.Exists(CacheKey(userA)) {
		t.Fatal("expected roles to be cached")
	}
	if ttl := mr.TTL(CacheKey(userA)); ttl != time.Minute {
		t.Errorf("expected ttl 1m, got %v", ttl)
	}

	// bypass the checker so only the cache knows the old answer
	checker.store.Grant(ctx, userA, SystemAdmin, userB)
	admin, _ := checker.IsAdmin(ctx, userA)
	if admin {
		t.Error("expected cached roles to be served")
	}

	checker.Grant(ctx, userA, BetaUser, userB)
	admin, _ = checker.IsAdmin(ctx, userA)
	if !admin {
		t.Error("grant should invalidate the cache")
	}
}

func TestChecker_GrantSurvivesCacheOutage(t *testing.T) {
	checker, mr := newTestChecker(t)
	ctx := context.Background()
	mr.Close()

	if err := checker.Grant(ctx, userA, ManagerProGold, userB); err != nil {
		t.Fatalf("grant should succeed without the cache: %v", err)
	}
	roles, err := checker.store.ListByUser(ctx, userA)
	if err != nil {
		t.Fatalf("store roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != ManagerProGold {
		t.Errorf("expected stored grant, got %v", roles)
	}

	if err := checker.Revoke(ctx, userA, ManagerProGold); err != nil {
		t.Fatalf("revoke should succeed without the cache: %v", err)
	}
	if err := checker.Revoke(ctx, userA, ManagerProGold); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing role, got %v", err)
	}
}

func TestChecker_IgnoresCorruptCache(t *testing.T) {
	checker, mr := newTestChecker(t)
	ctx := context.Background()

	checker.store.Grant(ctx, userA, Agent, "")
	mr.Set(CacheKey(userA), "{broken")

	names, err := checker.RoleNames(ctx, userA)
	if err != nil {
		t.Fatalf("role names failed: %v", err)
	}
	if len(names) != 1 || names[0] != "agent" {
		t.Errorf("expected [agent], got %v", names)
	}
}

func TestChecker_CachesEmptyRoles(t *testing.T) {
	checker, mr := newTestChecker(t)

	names, err := checker.RoleNames(context.Background(), userB)
	if err != nil {
		t.Fatalf("role names failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no roles, got %v", names)
	}
	if got, _ := mr.Get(CacheKey(userB)); got != "[]" {
		t.Errorf("expected empty list cached, got %q", got)
	}
}

func TestStore_UsersWithRole(t *testing.T) {
	checker, _ := newTestChecker(t)
	ctx := context.Background()
	checker.Grant(ctx, userA, SystemAdmin, "")
	checker.Grant(ctx, userB, SystemAdmin, "")
	checker.Grant(ctx, userB, Agent, "")

	users, err := checker.store.UsersWithRole(ctx, SystemAdmin)
	if err != nil {
		t.Fatalf("users with role failed: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 admins, got %v", users)
	}
}
