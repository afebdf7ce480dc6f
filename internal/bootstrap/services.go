package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/nkp491/surehelp/internal/auth"
	"github.com/nkp491/surehelp/internal/metrics"
	"github.com/nkp491/surehelp/internal/notification"
	"github.com/nkp491/surehelp/internal/profile"
	"github.com/nkp491/surehelp/internal/ratelimit"
	"github.com/nkp491/surehelp/internal/role"
	"github.com/nkp491/surehelp/internal/team"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

func ProvideJWTValidator(cfg *Config) *auth.JWTValidator {
	return auth.NewJWTValidator(cfg.JWTSecret)
}

func ProvideRoleChecker(store *role.Store, redisClient *redis.Client, cfg *Config, logger *slog.Logger) *role.Checker {
	return role.NewChecker(store, role.NewCache(redisClient, cfg.RoleCacheTTL), cfg.HierarchyMaxDepth, logger)
}

func ProvideHub(redisClient *redis.Client, logger *slog.Logger) *notification.Hub {
	return notification.NewHub(redisClient, logger)
}

func ProvideNotificationService(store *notification.Store, hub *notification.Hub, logger *slog.Logger) *notification.Service {
	return notification.NewService(store, hub, logger)
}

// NewMetricsService wires the metrics service. events may be nil.
func NewMetricsService(redisClient *redis.Client, daily *metrics.DailyStore, events metrics.EventPublisher, loc *time.Location, logger *slog.Logger) *metrics.Service {
	return metrics.NewService(metrics.ServiceConfig{
		Repo:     metrics.NewRedisRepository(redisClient),
		Daily:    daily,
		Events:   events,
		Location: loc,
		Now:      time.Now,
		Log:      logger,
	})
}

func ProvideMetricsService(redisClient *redis.Client, daily *metrics.DailyStore, hub *notification.Hub, cfg *Config, logger *slog.Logger) *metrics.Service {
	return NewMetricsService(redisClient, daily, hub, cfg.Location, logger)
}

func ProvidePermissions(checker *role.Checker, teams *team.Store, profiles *profile.Store) *team.Permissions {
	return team.NewPermissions(checker, team.NewResolver(teams), profiles)
}

func ProvideRateLimiter(lc fx.Lifecycle, cfg *Config) *ratelimit.Limiter {
	l := ratelimit.New(ratelimit.Config{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	})
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			l.Close()
			return nil
		},
	})
	return l
}

var ServicesModule = fx.Options(
	fx.Provide(
		ProvideJWTValidator,
		ProvideRoleChecker,
		ProvideHub,
		ProvideNotificationService,
		ProvideMetricsService,
		ProvidePermissions,
		ProvideRateLimiter,
	),
)
