package commands

import (
	"context"
	"log/slog"
	"time"

	"mindvale-server/internal/observability/metrics"
	"mindvale-server/internal/pkg/clock"
	"mindvale-server/internal/pkg/errs"
	"mindvale-server/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SweepCommands interface {
	// ExpirePending cancels Pending bookings older than the TTL and releases
	// their slots, all in one transaction. Returns how many were expired.
	ExpirePending(ctx context.Context, ttl time.Duration) (int, error)
}

type sweepCommandsImpl struct {
	bookings  BookingRepository
	providers ProviderRepository
	db        *pgxpool.Pool
	clock     clock.Clock
	metrics   *metrics.BookingMetrics
	logger    *slog.Logger
}

func NewSweepCommands(
	bookings BookingRepository,
	providers ProviderRepository,
	db *pgxpool.Pool,
	clk clock.Clock,
	m *metrics.BookingMetrics,
	logger *slog.Logger,
) SweepCommands {
	return &sweepCommandsImpl{
		bookings:  bookings,
		providers: providers,
		db:        db,
		clock:     clk,
		metrics:   m,
		logger:    logger,
	}
}

func (c *sweepCommandsImpl) ExpirePending(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := c.clock.Now().Add(-ttl)

	expired, err := shared.RunInTxWithRetry(ctx, c.db, 3, func(tx pgx.Tx) ([]ExpiredPendingBooking, error) {
		expired, err := c.bookings.ExpirePending(ctx, tx, cutoff)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		for _, e := range expired {
			if err := c.providers.MarkSlotAvailable(ctx, tx, e.ProviderID, e.Key); err != nil {
				return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		return expired, nil
	})
	if err != nil {
		return 0, err
	}

	if len(expired) > 0 {
		c.logger.Info("expired pending bookings", "count", len(expired), "cutoff", cutoff)
		c.metrics.ObservePendingExpired(len(expired))
	}
	return len(expired), nil
}
