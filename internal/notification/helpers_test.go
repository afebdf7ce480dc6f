package notification

import (
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testUserID  = "6f1c2a7e-3b4d-4c5e-8f90-123456789abc"
	otherUserID = "0e0d6c1a-1111-4222-8333-444455556666"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestNotificationDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db
}

func setupTestRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func newTestService(t *testing.T) (*Service, *Hub, *Store) {
	store := NewStore(setupTestNotificationDB(t))
	if err := store.Migrate(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	hub := NewHub(setupTestRedis(t), testLogger())
	return NewService(store, hub, testLogger()), hub, store
}
