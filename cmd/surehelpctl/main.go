package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nkp491/surehelp/internal/bootstrap"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	verbose bool

	cfg    *bootstrap.Config
	zlog   *zap.Logger
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "surehelpctl",
	Short: "Operator tool for the SureHelp metrics backend",
	Long: `surehelpctl runs maintenance tasks against the same Postgres and Redis
the server uses. Configuration is read from the environment and the file
named by SUREHELP_CONFIG.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = bootstrap.LoadConfig()
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		zlog, err = bootstrap.NewZapLogger(level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = bootstrap.NewSlogLogger(zlog)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if zlog != nil {
			_ = zlog.Sync()
		}
	},
}

func openDatabase() (*gorm.DB, func(), error) {
	db, err := bootstrap.OpenDatabase(cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, closeFn, nil
}

func openRedis(ctx context.Context) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(migrateCmd, seedCmd, rollupCmd, tokenCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
