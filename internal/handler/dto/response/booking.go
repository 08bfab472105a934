package response

import (
	"time"

	"mindvale-server/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	ProviderID    uuid.UUID `json:"provider_id"`
	ProviderName  string    `json:"provider_name"`
	ProviderTitle string    `json:"provider_title"`

	BookingDate string `json:"booking_date"`
	BookingTime string `json:"booking_time"`
	Channel     string `json:"channel"`

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

type BookingListResponse struct {
	ID            uuid.UUID `json:"id"`
	ProviderID    uuid.UUID `json:"provider_id"`
	ProviderName  string    `json:"provider_name"`
	ProviderTitle string    `json:"provider_title"`
	BookingDate   string    `json:"booking_date"`
	BookingTime   string    `json:"booking_time"`
	Channel       string    `json:"channel"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	PriceAmount   int64     `json:"price_amount"`
	PriceCurrency string    `json:"price_currency"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, rm)
	resp.BookingDate = rm.BookingDate.Format("2006-01-02")
	return &resp
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	var resp BookingListResponse
	_ = copier.Copy(&resp, rm)
	resp.BookingDate = rm.BookingDate.Format("2006-01-02")
	return &resp
}
