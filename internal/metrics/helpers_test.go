package metrics

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testUser = "6f1c2a7e-3b4d-4c5e-8f90-123456789abc"

func setupTestMetricsDB(t *testing.T) *gorm.DB {
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

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type publishedEvent struct {
	userID    string
	eventType string
	payload   any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, userID, eventType string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{userID, eventType, payload})
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type testEnv struct {
	db      *gorm.DB
	mr      *miniredis.Miniredis
	repo    *RedisRepository
	daily   *DailyStore
	clock   *testClock
	events  *recordingPublisher
	service *Service
}

func newTestEnv(t *testing.T) *testEnv {
	db := setupTestMetricsDB(t)
	daily := NewDailyStore(db)
	if err := daily.Migrate(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	mr, client := setupTestRedis(t)
	repo := NewRedisRepository(client)
	clock := &testClock{now: time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)}
	events := &recordingPublisher{}

	svc := NewService(ServiceConfig{
		Repo:     repo,
		Daily:    daily,
		Events:   events,
		Location: time.UTC,
		Now:      clock.Now,
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return &testEnv{
		db:      db,
		mr:      mr,
		repo:    repo,
		daily:   daily,
		clock:   clock,
		events:  events,
		service: svc,
	}
}

func (e *testEnv) seedDay(t *testing.T, userID, date string, s Snapshot) {
	row := &DailyMetric{UserID: userID, Date: date}
	row.SetSnapshot(s)
	if err := e.daily.Upsert(context.Background(), row); err != nil {
		t.Fatalf("failed to seed %s: %v", date, err)
	}
}
