package commands

import (
	"context"
	"time"

	"mindvale-server/internal/domain/booking"
	"mindvale-server/internal/domain/slot"
	"mindvale-server/internal/infra/db"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types (CQRS separation)
type ProviderSnapshot struct {
	ID            uuid.UUID
	Name          string
	Title         string
	PriceAmount   int64
	PriceCurrency string
	Active        bool
}

// ExpiredPendingBooking carries what the sweep needs to release a slot.
type ExpiredPendingBooking struct {
	BookingID  uuid.UUID
	ProviderID uuid.UUID
	Key        slot.Key
}

type ProviderRepository interface {
	FindSnapshot(ctx context.Context, id uuid.UUID) (*ProviderSnapshot, error)
	// MarkSlotBooked is a single conditional update: it succeeds only when the
	// slot row exists and is not already booked. This is the sole reservation
	// mechanism; there is no separate read-then-write window.
	MarkSlotBooked(ctx context.Context, q db.Querier, providerID uuid.UUID, key slot.Key) error
	// MarkSlotAvailable releases a slot. A missing row is a no-op, not an
	// error: the booking record outlives slot presence.
	MarkSlotAvailable(ctx context.Context, q db.Querier, providerID uuid.UUID, key slot.Key) error
}

type BookingRepository interface {
	Create(ctx context.Context, q db.Querier, b *booking.Booking) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	CountNonCancelledByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	SetPaymentOrder(ctx context.Context, q db.Querier, id uuid.UUID, orderID string) error
	RecordPayment(ctx context.Context, q db.Querier, b *booking.Booking) error
	MarkCancelled(ctx context.Context, q db.Querier, id uuid.UUID) error
	ExpirePending(ctx context.Context, q db.Querier, before time.Time) ([]ExpiredPendingBooking, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, q db.Querier, kind, topic string, payload []byte, runAt time.Time) error
}

// OrderRequest goes to the payment gateway; amounts are minor currency units.
type OrderRequest struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	Notes       map[string]string
}

type OrderResult struct {
	OrderID     string
	AmountMinor int64
	Currency    string
}

type PaymentGateway interface {
	Enabled() bool
	PublicKey() string
	CreateOrder(ctx context.Context, req OrderRequest) (*OrderResult, error)
}

// Signer recomputes the gateway checkout signature for verification.
type Signer interface {
	Compute(orderID, paymentID string) string
}
