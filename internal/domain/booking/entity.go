package booking

import (
	"errors"
	"time"

	"mindvale-server/internal/domain/pricing"
	"mindvale-server/internal/domain/slot"

	"github.com/google/uuid"
)

var (
	ErrNotOwner         = errors.New("booking does not belong to user")
	ErrAlreadyCancelled = errors.New("booking is cancelled")
	ErrAlreadyPaid      = errors.New("booking is already paid")
)

// Booking is one reservation of a provider slot. It copies (date, time,
// channel) from the slot at creation and carries a denormalized provider
// name/title snapshot so it stays displayable if the provider record is
// later altered or removed.
type Booking struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ProviderID    uuid.UUID
	ProviderName  string
	ProviderTitle string

	Date    time.Time
	Time    slot.TimeOfDay
	Channel slot.Channel

	Status        Status
	PaymentStatus PaymentStatus

	Price          pricing.Price
	OriginalAmount *int64
	DiscountCode   *string
	DiscountAmount int64

	PaymentOrderID   *string
	PaymentID        *string
	PaymentSignature *string
	PaidAt           *time.Time

	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New assembles a Pending/Pending booking from a reserved slot key, the
// provider snapshot and a price quote.
func New(userID, providerID uuid.UUID, providerName, providerTitle string, key slot.Key, quote pricing.Quote, notes *string) *Booking {
	return &Booking{
		ID:             uuid.New(),
		UserID:         userID,
		ProviderID:     providerID,
		ProviderName:   providerName,
		ProviderTitle:  providerTitle,
		Date:           key.Date,
		Time:           key.Time,
		Channel:        key.Channel,
		Status:         StatusPending,
		PaymentStatus:  PaymentPending,
		Price:          quote.Final,
		OriginalAmount: quote.OriginalAmount,
		DiscountCode:   quote.DiscountCode,
		DiscountAmount: quote.DiscountAmount,
		Notes:          notes,
	}
}

func (b *Booking) SlotKey() slot.Key {
	return slot.Key{Date: b.Date, Time: b.Time, Channel: b.Channel}
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.UserID == userID
}

// MarkPaid records a verified payment and moves the booking to
// Confirmed/Paid. A cancelled booking never becomes paid: a stale but valid
// signature must not resurrect it. Re-marking an already-confirmed booking
// with the same payment is a no-op.
func (b *Booking) MarkPaid(orderID, paymentID, signature string, now time.Time) error {
	if b.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if b.PaymentStatus == PaymentPaid {
		if b.PaymentID != nil && *b.PaymentID == paymentID {
			return nil
		}
		return ErrAlreadyPaid
	}

	b.PaymentOrderID = &orderID
	b.PaymentID = &paymentID
	b.PaymentSignature = &signature
	b.Status = StatusConfirmed
	b.PaymentStatus = PaymentPaid
	b.PaidAt = &now
	return nil
}

// Cancel flips status to Cancelled. PaymentStatus is left untouched; refunds
// are a manual process outside this flow. Cancelling twice is idempotent.
func (b *Booking) Cancel() {
	b.Status = StatusCancelled
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}
