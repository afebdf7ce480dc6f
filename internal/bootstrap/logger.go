package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

func parseLogLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func NewZapLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLogLevel(level))
	return cfg.Build()
}

func ProvideZapLogger(lc fx.Lifecycle, cfg *Config) (*zap.Logger, error) {
	z, err := NewZapLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = z.Sync()
			return nil
		},
	})
	return z, nil
}

// NewSlogLogger exposes z through log/slog, which every package logs with.
func NewSlogLogger(z *zap.Logger) *slog.Logger {
	return slog.New(zapslog.NewHandler(z.Core()))
}

func fxLogger(z *zap.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: z.Named("fx")}
}

var LoggerModule = fx.Options(
	fx.Provide(
		ProvideZapLogger,
		NewSlogLogger,
	),
	fx.WithLogger(fxLogger),
)
