package repository

import (
	"context"
	"time"

	"mindvale-server/internal/domain/booking"
	"mindvale-server/internal/domain/slot"
	"mindvale-server/internal/infra"
	"mindvale-server/internal/infra/db"
	"mindvale-server/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) Create(ctx context.Context, q db.Querier, b *booking.Booking) (uuid.UUID, error) {
	const query = `
		INSERT INTO bookings (
			id, user_id, provider_id, provider_name, provider_title,
			booking_date, booking_time, channel,
			status, payment_status,
			price_amount, price_currency, original_amount, discount_code, discount_amount,
			notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		b.ID,
		b.UserID,
		b.ProviderID,
		b.ProviderName,
		b.ProviderTitle,
		b.Date,
		b.Time.String(),
		b.Channel.String(),
		b.Status.String(),
		b.PaymentStatus.String(),
		b.Price.Amount,
		b.Price.Currency,
		b.OriginalAmount,
		b.DiscountCode,
		b.DiscountAmount,
		b.Notes,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return b.ID, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	const query = `
		SELECT id, user_id, provider_id, provider_name, provider_title,
		       booking_date, booking_time, channel,
		       status, payment_status,
		       price_amount, price_currency, original_amount, discount_code, discount_amount,
		       payment_order_id, payment_id, payment_signature, paid_at,
		       notes, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`
	var (
		b         booking.Booking
		timeLabel string
		channel   string
		status    string
		payStatus string
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.UserID,
		&b.ProviderID,
		&b.ProviderName,
		&b.ProviderTitle,
		&b.Date,
		&timeLabel,
		&channel,
		&status,
		&payStatus,
		&b.Price.Amount,
		&b.Price.Currency,
		&b.OriginalAmount,
		&b.DiscountCode,
		&b.DiscountAmount,
		&b.PaymentOrderID,
		&b.PaymentID,
		&b.PaymentSignature,
		&b.PaidAt,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	b.Time = slot.TimeOfDay(timeLabel)
	b.Channel = slot.Channel(channel)
	b.Status = booking.Status(status)
	b.PaymentStatus = booking.PaymentStatus(payStatus)
	b.Date = slot.TruncateToDate(b.Date)
	return &b, nil
}

func (r *BookingRepository) CountNonCancelledByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `
		SELECT count(*)
		FROM bookings
		WHERE user_id = $1 AND status <> $2
	`
	var count int64
	if err := r.pool.QueryRow(ctx, query, userID, booking.StatusCancelled.String()).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count user bookings", err)
	}
	return count, nil
}

func (r *BookingRepository) SetPaymentOrder(ctx context.Context, q db.Querier, id uuid.UUID, orderID string) error {
	const query = `
		UPDATE bookings
		SET payment_order_id = $2, updated_at = now()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, id, orderID)
	if err != nil {
		return infra.WrapRepoErr("failed to set payment order", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) RecordPayment(ctx context.Context, q db.Querier, b *booking.Booking) error {
	const query = `
		UPDATE bookings
		SET payment_order_id = $2,
		    payment_id = $3,
		    payment_signature = $4,
		    status = $5,
		    payment_status = $6,
		    paid_at = $7,
		    updated_at = now()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		b.ID,
		b.PaymentOrderID,
		b.PaymentID,
		b.PaymentSignature,
		b.Status.String(),
		b.PaymentStatus.String(),
		b.PaidAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to record payment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) MarkCancelled(ctx context.Context, q db.Querier, id uuid.UUID) error {
	const query = `
		UPDATE bookings
		SET status = $2, updated_at = now()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, id, booking.StatusCancelled.String())
	if err != nil {
		return infra.WrapRepoErr("failed to cancel booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// ExpirePending cancels Pending/Pending bookings created before the cutoff and
// returns their slot keys so the caller can release the slots in the same
// transaction.
func (r *BookingRepository) ExpirePending(ctx context.Context, q db.Querier, before time.Time) ([]commands.ExpiredPendingBooking, error) {
	const query = `
		UPDATE bookings
		SET status = $1, updated_at = now()
		WHERE status = $2 AND payment_status = $3 AND created_at < $4
		RETURNING id, provider_id, booking_date, booking_time, channel
	`
	rows, err := q.Query(ctx, query,
		booking.StatusCancelled.String(),
		booking.StatusPending.String(),
		booking.PaymentPending.String(),
		before,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to expire pending bookings", err)
	}
	defer rows.Close()

	var expired []commands.ExpiredPendingBooking
	for rows.Next() {
		var (
			e         commands.ExpiredPendingBooking
			date      time.Time
			timeLabel string
			channel   string
		)
		if err := rows.Scan(&e.BookingID, &e.ProviderID, &date, &timeLabel, &channel); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expired booking", err)
		}
		e.Key = slot.Key{
			Date:    slot.TruncateToDate(date),
			Time:    slot.TimeOfDay(timeLabel),
			Channel: slot.Channel(channel),
		}
		expired = append(expired, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read expired bookings", err)
	}
	return expired, nil
}
