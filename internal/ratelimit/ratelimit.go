package ratelimit

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nkp491/surehelp/internal/auth"
	"github.com/nkp491/surehelp/internal/shared"
	"golang.org/x/time/rate"
)

type Config struct {
	RequestsPerSecond float64
	Burst             int
	CleanupInterval   time.Duration
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 10,
		Burst:             20,
		CleanupInterval:   5 * time.Minute,
	}
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter hands out one token bucket per caller. Callers are keyed by the
// authenticated user id, falling back to the client IP.
type Limiter struct {
	config Config
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*entry

	stop     chan struct{}
	stopOnce sync.Once
}

func New(cfg Config) *Limiter {
	if cfg.RequestsPerSecond <= 0 || cfg.Burst <= 0 {
		def := DefaultConfig()
		cfg.RequestsPerSecond, cfg.Burst = def.RequestsPerSecond, def.Burst
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultConfig().CleanupInterval
	}
	l := &Limiter{
		config:  cfg,
		now:     time.Now,
		entries: make(map[string]*entry),
		stop:    make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.Burst)}
		l.entries[key] = e
	}
	e.lastSeen = l.now()
	l.mu.Unlock()

	return e.limiter.Allow()
}

// sweep drops limiters idle for longer than the cleanup interval.
func (l *Limiter) sweep() {
	cutoff := l.now().Add(-l.config.CleanupInterval)
	l.mu.Lock()
	for key, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, key)
		}
	}
	l.mu.Unlock()
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func (l *Limiter) Close() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "ip:" + c.RealIP()
			if claims := auth.GetClaims(c); claims != nil && claims.UserID != "" {
				key = "user:" + claims.UserID
			}

			if !l.Allow(key) {
				return shared.TooManyRequests("rate_limit_exceeded", "too many requests")
			}
			return next(c)
		}
	}
}
