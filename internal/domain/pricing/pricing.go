package pricing

import (
	"errors"
	"math"
)

const (
	// WelcomeCode is recorded on a booking when the first-session discount applies.
	WelcomeCode = "WELCOME20"
	welcomeRate = 0.20
)

var ErrInvalidBasePrice = errors.New("base price must be positive")

// Price is an amount in major units plus a display currency symbol. The symbol
// is preserved verbatim for UI compatibility; it is not an ISO code (the
// gateway uses "INR" separately).
type Price struct {
	Amount   int64
	Currency string
}

// Quote is the outcome of pricing one booking. Once a booking has persisted
// its quote, that stored price is authoritative; callers must never re-derive
// the discount with a later booking count.
type Quote struct {
	Final          Price
	OriginalAmount *int64
	DiscountCode   *string
	DiscountAmount int64
}

// ForBooking prices a new booking. A user with zero prior non-cancelled
// bookings gets a flat 20% off, rounded to the nearest currency unit. Session
// duration never affects the price.
func ForBooking(base Price, priorNonCancelled int64) (Quote, error) {
	if base.Amount <= 0 {
		return Quote{}, ErrInvalidBasePrice
	}

	if priorNonCancelled > 0 {
		return Quote{Final: base}, nil
	}

	discount := int64(math.Round(float64(base.Amount) * welcomeRate))
	original := base.Amount
	code := WelcomeCode
	return Quote{
		Final:          Price{Amount: base.Amount - discount, Currency: base.Currency},
		OriginalAmount: &original,
		DiscountCode:   &code,
		DiscountAmount: discount,
	}, nil
}
