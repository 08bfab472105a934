package readstore

import (
	"context"

	"mindvale-server/internal/infra"
	"mindvale-server/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingReadStore struct {
	pool *pgxpool.Pool
}

func NewBookingReadStore(pool *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{pool: pool}
}

// Provider name/title resolve through the live provider row when it still
// exists; the denormalized snapshot on the booking is the display fallback.
const bookingViewColumns = `
	b.id, b.user_id, b.provider_id,
	COALESCE(p.name, b.provider_name, 'Unknown Provider') AS provider_name,
	COALESCE(p.title, b.provider_title, 'N/A') AS provider_title,
	b.booking_date, b.booking_time, b.channel,
	b.status, b.payment_status,
	b.price_amount, b.price_currency, b.original_amount, b.discount_code, b.discount_amount,
	b.payment_order_id, b.payment_id, b.paid_at,
	b.notes, b.created_at
`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query := `
		SELECT ` + bookingViewColumns + `
		FROM bookings b
		LEFT JOIN providers p ON p.id = b.provider_id
		WHERE b.id = $1
	`
	var view queries.BookingView
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&view.ID,
		&view.UserID,
		&view.ProviderID,
		&view.ProviderName,
		&view.ProviderTitle,
		&view.BookingDate,
		&view.BookingTime,
		&view.Channel,
		&view.Status,
		&view.PaymentStatus,
		&view.PriceAmount,
		&view.PriceCurrency,
		&view.OriginalAmount,
		&view.DiscountCode,
		&view.DiscountAmount,
		&view.PaymentOrderID,
		&view.PaymentID,
		&view.PaidAt,
		&view.Notes,
		&view.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return &view, nil
}

func (r *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, b.provider_id,
		       COALESCE(p.name, b.provider_name, 'Unknown Provider') AS provider_name,
		       COALESCE(p.title, b.provider_title, 'N/A') AS provider_title,
		       b.booking_date, b.booking_time, b.channel,
		       b.status, b.payment_status,
		       b.price_amount, b.price_currency, b.created_at
		FROM bookings b
		LEFT JOIN providers p ON p.id = b.provider_id
		WHERE b.user_id = $1
		ORDER BY b.booking_date DESC, b.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list user bookings", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(
			&item.ID,
			&item.ProviderID,
			&item.ProviderName,
			&item.ProviderTitle,
			&item.BookingDate,
			&item.BookingTime,
			&item.Channel,
			&item.Status,
			&item.PaymentStatus,
			&item.PriceAmount,
			&item.PriceCurrency,
			&item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking list", err)
	}
	return items, nil
}
