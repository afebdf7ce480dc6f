package bootstrap

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nkp491/surehelp/internal/auth"
	"github.com/nkp491/surehelp/internal/metrics"
	"github.com/nkp491/surehelp/internal/notification"
	"github.com/nkp491/surehelp/internal/profile"
	"github.com/nkp491/surehelp/internal/ratelimit"
	"github.com/nkp491/surehelp/internal/role"
	"github.com/nkp491/surehelp/internal/team"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/fx"
)

type HandlerParams struct {
	fx.In

	ProfileHandler      *profile.Handler
	RoleHandler         *role.Handler
	MetricsHandler      *metrics.Handler
	TeamHandler         *team.Handler
	NotificationHandler *notification.Handler
	JWTMiddleware       *auth.Middleware
	RoleChecker         *role.Checker
	RateLimiter         *ratelimit.Limiter
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	api := e.Group("/v1", params.JWTMiddleware.Authenticate)

	params.ProfileHandler.RegisterRoutes(api)
	params.RoleHandler.RegisterRoutes(api, api.Group("/admin", params.RoleChecker.RequireRole(role.SystemAdmin)))
	params.MetricsHandler.RegisterRoutes(api.Group("/metrics"), params.RateLimiter.Middleware())
	params.TeamHandler.RegisterRoutes(api.Group("/teams"), api.Group("/users"))
	params.NotificationHandler.RegisterRoutes(api.Group("/notifications"))

	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

func ProvideJWTMiddleware(validator *auth.JWTValidator, profiles *profile.Store) *auth.Middleware {
	return auth.NewMiddleware(validator, profiles)
}

func ProvideProfileHandler(store *profile.Store, checker *role.Checker, logger *slog.Logger) *profile.Handler {
	return profile.NewHandler(store, checker, logger.With("handler", "profile"))
}

func ProvideRoleHandler(checker *role.Checker, notifications *notification.Service, logger *slog.Logger) *role.Handler {
	return role.NewHandler(checker, notifications, logger.With("handler", "role"))
}

func ProvideMetricsHandler(service *metrics.Service, logger *slog.Logger) *metrics.Handler {
	return metrics.NewHandler(service, logger.With("handler", "metrics"))
}

type TeamHandlerParams struct {
	fx.In

	Store         *team.Store
	Profiles      *profile.Store
	Roles         *role.Checker
	Permissions   *team.Permissions
	Metrics       *metrics.Service
	MetricsView   *metrics.Handler
	Notifications *notification.Service
	Logger        *slog.Logger
}

func ProvideTeamHandler(p TeamHandlerParams) *team.Handler {
	return team.NewHandler(team.HandlerConfig{
		Store:       p.Store,
		Profiles:    p.Profiles,
		Roles:       p.Roles,
		Permissions: p.Permissions,
		Metrics:     p.Metrics,
		MetricsView: p.MetricsView,
		Notifier:    p.Notifications,
		Logger:      p.Logger.With("handler", "team"),
	})
}

func ProvideNotificationHandler(service *notification.Service, hub *notification.Hub, logger *slog.Logger) *notification.Handler {
	return notification.NewHandler(service, hub, logger.With("handler", "notification"))
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideJWTMiddleware,
		ProvideProfileHandler,
		ProvideRoleHandler,
		ProvideMetricsHandler,
		ProvideTeamHandler,
		ProvideNotificationHandler,
	),
	fx.Invoke(RegisterRoutes),
)
