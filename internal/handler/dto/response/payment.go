package response

import (
	"mindvale-server/internal/usecase/commands"
)

type OrderResponse struct {
	OrderID string `json:"order_id"`
	// Amount in minor currency units, as the gateway checkout expects.
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Key      string `json:"key"`
}

func FromPaymentOrder(order *commands.PaymentOrder) *OrderResponse {
	return &OrderResponse{
		OrderID:  order.OrderID,
		Amount:   order.AmountMinor,
		Currency: order.Currency,
		Key:      order.Key,
	}
}
