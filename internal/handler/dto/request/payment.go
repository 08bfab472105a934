package request

import (
	"mindvale-server/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateOrderRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	// Amount in major currency units, as shown to the user at booking time.
	Amount int64 `json:"amount" binding:"required"`
}

func (r CreateOrderRequest) ToParams() commands.CreateOrderParams {
	return commands.CreateOrderParams{
		BookingID: r.BookingID,
		Amount:    r.Amount,
	}
}

// Field names mirror what the gateway's checkout callback hands to the client.
type VerifyPaymentRequest struct {
	BookingID         uuid.UUID `json:"booking_id" binding:"required"`
	RazorpayOrderID   string    `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string    `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string    `json:"razorpay_signature" binding:"required"`
}

func (r VerifyPaymentRequest) ToParams() commands.VerifyPaymentParams {
	return commands.VerifyPaymentParams{
		BookingID: r.BookingID,
		OrderID:   r.RazorpayOrderID,
		PaymentID: r.RazorpayPaymentID,
		Signature: r.RazorpaySignature,
	}
}
