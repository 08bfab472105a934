package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"mindvale-server/internal/domain/booking"
	"mindvale-server/internal/domain/pricing"
	"mindvale-server/internal/domain/slot"
	"mindvale-server/internal/infra"
	"mindvale-server/internal/observability/metrics"
	"mindvale-server/internal/pkg/clock"
	"mindvale-server/internal/pkg/errs"
	"mindvale-server/internal/usecase/queries"
	"mindvale-server/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CreateBookingParams struct {
	ProviderID uuid.UUID
	Date       string
	Time       string
	Channel    string
	Notes      *string
}

// SlotKey validates the raw request fields into a slot key. The date accepts
// plain "2006-01-02" or a full RFC3339 timestamp (the web client sends both);
// only the calendar day is kept either way.
func (p CreateBookingParams) SlotKey() (slot.Key, error) {
	date, err := time.Parse("2006-01-02", p.Date)
	if err != nil {
		date, err = time.Parse(time.RFC3339, p.Date)
		if err != nil {
			return slot.Key{}, errs.Mark(slot.ErrInvalidDate, errs.ErrValidation)
		}
	}

	// "Video" is the client-side alias for Online.
	channel := p.Channel
	if channel == "Video" {
		channel = slot.ChannelOnline.String()
	}

	key, err := slot.NewKey(date, p.Time, channel)
	if err != nil {
		return slot.Key{}, errs.Mark(err, errs.ErrValidation)
	}
	return key, nil
}

type BookingCommands interface {
	Create(ctx context.Context, userID uuid.UUID, p CreateBookingParams) (*queries.BookingView, error)
	Cancel(ctx context.Context, userID, bookingID uuid.UUID) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	bookings       BookingRepository
	providers      ProviderRepository
	notifications  NotificationRepository
	bookingQueries queries.BookingQueries
	db             *pgxpool.Pool
	clock          clock.Clock
	metrics        *metrics.BookingMetrics
	logger         *slog.Logger
}

func NewBookingCommands(
	bookings BookingRepository,
	providers ProviderRepository,
	notifications NotificationRepository,
	bookingQueries queries.BookingQueries,
	db *pgxpool.Pool,
	clk clock.Clock,
	m *metrics.BookingMetrics,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		bookings:       bookings,
		providers:      providers,
		notifications:  notifications,
		bookingQueries: bookingQueries,
		db:             db,
		clock:          clk,
		metrics:        m,
		logger:         logger,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, userID uuid.UUID, p CreateBookingParams) (*queries.BookingView, error) {
	snap, err := c.providers.FindSnapshot(ctx, p.ProviderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrProviderNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !snap.Active {
		return nil, errs.ErrProviderNotFound
	}

	key, err := p.SlotKey()
	if err != nil {
		return nil, err
	}

	priorCount, err := c.bookings.CountNonCancelledByUser(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	quote, err := pricing.ForBooking(pricing.Price{Amount: snap.PriceAmount, Currency: snap.PriceCurrency}, priorCount)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	entity := booking.New(userID, snap.ID, snap.Name, snap.Title, key, quote, trimNotes(p.Notes))

	// Slot reservation and booking insert commit or fail together; the
	// conditional slot update is what makes "at most one booking per key" hold
	// under concurrent requests.
	bookingID, err := shared.RunInTx(ctx, c.db, func(tx pgx.Tx) (uuid.UUID, error) {
		if err := c.providers.MarkSlotBooked(ctx, tx, snap.ID, key); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return uuid.Nil, errs.ErrSlotUnavailable
			}
			return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		id, err := c.bookings.Create(ctx, tx, entity)
		if err != nil {
			return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := c.enqueueJob(ctx, tx, "booking_created", entity); err != nil {
			return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return id, nil
	})
	if err != nil {
		return nil, err
	}

	c.metrics.ObserveBookingCreated(key.Channel.String(), quote.DiscountCode != nil)

	return c.bookingQueries.GetByIDSystem(ctx, bookingID)
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, userID, bookingID uuid.UUID) (*queries.BookingView, error) {
	entity, err := c.findOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	alreadyCancelled := entity.IsCancelled()
	entity.Cancel()

	if !alreadyCancelled {
		_, err = shared.RunInTx(ctx, c.db, func(tx pgx.Tx) (struct{}, error) {
			if err := c.bookings.MarkCancelled(ctx, tx, entity.ID); err != nil {
				return struct{}{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if err := c.enqueueJob(ctx, tx, "booking_cancelled", entity); err != nil {
				return struct{}{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			return struct{}{}, nil
		})
		if err != nil {
			return nil, err
		}

		// Slot release is best-effort: the cancellation stands even when the
		// provider's slot data has changed underneath the booking.
		if err := c.providers.MarkSlotAvailable(ctx, c.db, entity.ProviderID, entity.SlotKey()); err != nil {
			c.logger.Warn("failed to release slot after cancellation",
				"booking_id", entity.ID, "provider_id", entity.ProviderID, "error", err)
		}

		c.metrics.ObserveBookingCancelled()
	}

	return c.bookingQueries.GetByIDSystem(ctx, bookingID)
}

func (c *bookingCommandsImpl) findOwned(ctx context.Context, userID, bookingID uuid.UUID) (*booking.Booking, error) {
	entity, err := c.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !entity.IsOwnedBy(userID) {
		return nil, errs.ErrForbidden
	}
	return entity, nil
}

func (c *bookingCommandsImpl) enqueueJob(ctx context.Context, tx pgx.Tx, topic string, b *booking.Booking) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id":    b.ID,
		"provider_name": b.ProviderName,
		"booking_date":  b.Date.Format("2006-01-02"),
		"booking_time":  b.Time.String(),
		"channel":       b.Channel.String(),
		"amount":        b.Price.Amount,
		"currency":      b.Price.Currency,
	})
	if err != nil {
		return err
	}
	return c.notifications.CreateJob(ctx, tx, "email", topic, payload, c.clock.Now())
}

func trimNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
