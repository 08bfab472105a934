package queries

import (
	"context"
	"time"

	"mindvale-server/internal/pkg/errs"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	ProviderID    uuid.UUID  `json:"provider_id"`
	ProviderName  string     `json:"provider_name"`
	ProviderTitle string     `json:"provider_title"`

	BookingDate time.Time `json:"booking_date"`
	BookingTime string    `json:"booking_time"`
	Channel     string    `json:"channel"`

	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`

	PriceAmount    int64   `json:"price_amount"`
	PriceCurrency  string  `json:"price_currency"`
	OriginalAmount *int64  `json:"original_amount,omitempty"`
	DiscountCode   *string `json:"discount_code,omitempty"`
	DiscountAmount int64   `json:"discount_amount"`

	PaymentOrderID *string    `json:"payment_order_id,omitempty"`
	PaymentID      *string    `json:"payment_id,omitempty"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`

	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type BookingListItem struct {
	ID            uuid.UUID `json:"id"`
	ProviderID    uuid.UUID `json:"provider_id"`
	ProviderName  string    `json:"provider_name"`
	ProviderTitle string    `json:"provider_title"`
	BookingDate   time.Time `json:"booking_date"`
	BookingTime   string    `json:"booking_time"`
	Channel       string    `json:"channel"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	PriceAmount   int64     `json:"price_amount"`
	PriceCurrency string    `json:"price_currency"`
	CreatedAt     time.Time `json:"created_at"`
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
}

type BookingQueries interface {
	// GetByID enforces ownership: only the booking's user may read it.
	GetByID(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem skips the ownership check for read-after-write inside commands.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.UserID != actor {
		return nil, errs.ErrForbidden
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error) {
	return q.store.FindByUserID(ctx, userID)
}
