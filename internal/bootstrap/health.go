package bootstrap

import (
	"github.com/labstack/echo/v4"
	"github.com/nkp491/surehelp/internal/health"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const version = "1.0.0"

func ProvideHealthHandler(db *gorm.DB, redis *redis.Client) *health.Handler {
	return health.NewHandler(db, redis, version)
}

func RegisterHealthRoutes(e *echo.Echo, h *health.Handler) {
	e.Use(h.Middleware())
	h.RegisterRoutes(e)
}

var HealthModule = fx.Options(
	fx.Provide(ProvideHealthHandler),
	fx.Invoke(RegisterHealthRoutes),
)
