package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"mindvale-server/internal/pkg/config"
	"mindvale-server/internal/usecase/commands"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Invoke(StartSweeper),
)

// StartSweeper runs the pending-expiry loop: bookings that never completed
// payment are cancelled after the TTL and their slots returned to the pool.
func StartSweeper(lc fx.Lifecycle, cfg config.Config, sweep commands.SweepCommands, logger *slog.Logger) {
	if !cfg.Sweep.Enabled {
		logger.Info("pending-booking sweeper disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("starting pending-booking sweeper",
				"interval", cfg.Sweep.Interval, "ttl", cfg.Sweep.PendingTTL)
			go func() {
				defer close(done)
				runSweepLoop(ctx, cfg.Sweep, sweep, logger)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}

func runSweepLoop(ctx context.Context, cfg config.SweepConfig, sweep commands.SweepCommands, logger *slog.Logger) {
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := sweep.ExpirePending(ctx, cfg.PendingTTL); err != nil {
				logger.Error("pending-booking sweep failed", "error", err)
			}
		}
	}
}
