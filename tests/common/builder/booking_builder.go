//go:build unit || e2e

package builder

import (
	"time"

	"mindvale-server/internal/domain/booking"
	"mindvale-server/internal/domain/pricing"
	"mindvale-server/internal/domain/slot"
	reqdto "mindvale-server/internal/handler/dto/request"
	"mindvale-server/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingBuilder assembles consistent booking fixtures for unit tests. The
// defaults are a valid online session two days out at full price.
type BookingBuilder struct {
	id           uuid.UUID
	userID       uuid.UUID
	providerID   uuid.UUID
	providerName string
	title        string
	date         time.Time
	timeLabel    string
	channel      string
	amount       int64
	notes        *string
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		id:           uuid.New(),
		userID:       uuid.New(),
		providerID:   uuid.New(),
		providerName: "Dr. Asha Verma",
		title:        "Clinical Psychologist",
		date:         time.Now().AddDate(0, 0, 2),
		timeLabel:    "10:00 AM",
		channel:      "Online",
		amount:       1000,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	if mutate != nil {
		mutate(b)
	}
	return b
}

func (b *BookingBuilder) WithUserID(id uuid.UUID) *BookingBuilder     { b.userID = id; return b }
func (b *BookingBuilder) WithProviderID(id uuid.UUID) *BookingBuilder { b.providerID = id; return b }
func (b *BookingBuilder) WithDate(d time.Time) *BookingBuilder        { b.date = d; return b }
func (b *BookingBuilder) WithTime(label string) *BookingBuilder       { b.timeLabel = label; return b }
func (b *BookingBuilder) WithChannel(ch string) *BookingBuilder       { b.channel = ch; return b }
func (b *BookingBuilder) WithAmount(amount int64) *BookingBuilder     { b.amount = amount; return b }
func (b *BookingBuilder) WithNotes(notes string) *BookingBuilder      { b.notes = &notes; return b }

func (b *BookingBuilder) BuildCreateRequest() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ProviderID: b.providerID,
		Date:       b.date.Format("2006-01-02"),
		Time:       b.timeLabel,
		Channel:    b.channel,
		Notes:      b.notes,
	}
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	key, err := slot.NewKey(b.date, b.timeLabel, b.channel)
	if err != nil {
		return nil, err
	}
	quote, err := pricing.ForBooking(pricing.Price{Amount: b.amount, Currency: "₹"}, 1)
	if err != nil {
		return nil, err
	}
	entity := booking.New(b.userID, b.providerID, b.providerName, b.title, key, quote, b.notes)
	entity.ID = b.id
	return entity, nil
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:            b.id,
		UserID:        b.userID,
		ProviderID:    b.providerID,
		ProviderName:  b.providerName,
		ProviderTitle: b.title,
		BookingDate:   slot.TruncateToDate(b.date),
		BookingTime:   b.timeLabel,
		Channel:       b.channel,
		Status:        booking.StatusPending.String(),
		PaymentStatus: booking.PaymentPending.String(),
		PriceAmount:   b.amount,
		PriceCurrency: "₹",
		Notes:         b.notes,
		CreatedAt:     time.Now(),
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:            b.id,
		ProviderID:    b.providerID,
		ProviderName:  b.providerName,
		ProviderTitle: b.title,
		BookingDate:   slot.TruncateToDate(b.date),
		BookingTime:   b.timeLabel,
		Channel:       b.channel,
		Status:        booking.StatusPending.String(),
		PaymentStatus: booking.PaymentPending.String(),
		PriceAmount:   b.amount,
		PriceCurrency: "₹",
		CreatedAt:     time.Now(),
	}
}
