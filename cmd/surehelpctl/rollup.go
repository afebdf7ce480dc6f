package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/nkp491/surehelp/internal/bootstrap"
	"github.com/nkp491/surehelp/internal/metrics"
	"github.com/nkp491/surehelp/internal/shared"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var rollupDays int

var rollupCmd = &cobra.Command{
	Use:   "rollup",
	Short: "Rebuild cached 24h, 7d and 30d snapshots from daily history",
	Long: `Recomputes the cached period snapshots of every user with history in the
last --days days. Run after restoring Redis or editing daily_metrics by hand.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, closeDB, err := openDatabase()
		if err != nil {
			return err
		}
		defer closeDB()

		redisClient, err := openRedis(ctx)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		daily := metrics.NewDailyStore(db)
		svc := bootstrap.NewMetricsService(redisClient, daily, nil, cfg.Location, logger)

		since := shared.Day(time.Now(), cfg.Location).AddDate(0, 0, -rollupDays)
		n, err := rollup(ctx, svc, daily, shared.FormatDay(since), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rebuilt snapshots for %d users.\n", n)
		return nil
	},
}

// rollup rebuilds every user with history on or after since. A failure for
// one user is logged and the rest still run; the error reports how many failed.
func rollup(ctx context.Context, svc *metrics.Service, daily *metrics.DailyStore, since string, progress io.Writer) (int, error) {
	users, err := daily.DistinctUsers(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		return 0, nil
	}

	bar := progressbar.NewOptions(len(users),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("rebuilding"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	var rebuilt, failed int
	for _, userID := range users {
		if err := ctx.Err(); err != nil {
			return rebuilt, err
		}
		if _, err := svc.Rebuild(ctx, userID); err != nil {
			logger.Error("rebuild failed", "error", err, "user_id", userID)
			failed++
		} else {
			rebuilt++
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	if failed > 0 {
		return rebuilt, fmt.Errorf("%d of %d users failed to rebuild", failed, len(users))
	}
	return rebuilt, nil
}

func init() {
	rollupCmd.Flags().IntVar(&rollupDays, "days", 30, "only users with history in the last N days")
}
