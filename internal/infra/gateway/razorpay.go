// Package gateway wraps the Razorpay order/checkout integration. The adapter
// is stateless apart from key configuration; missing keys degrade payment
// features instead of failing startup.
package gateway

import (
	"context"
	"log/slog"

	"mindvale-server/internal/pkg/config"
	"mindvale-server/internal/pkg/errs"
	"mindvale-server/internal/usecase/commands"

	razorpay "github.com/razorpay/razorpay-go"
)

const gatewayCurrency = "INR"

type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
}

func NewRazorpayGateway(cfg config.RazorpayConfig, logger *slog.Logger) *RazorpayGateway {
	if !cfg.Configured() {
		logger.Warn("razorpay keys not configured; payment endpoints will be unavailable")
		return &RazorpayGateway{}
	}
	return &RazorpayGateway{
		client: razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		keyID:  cfg.KeyID,
	}
}

func (g *RazorpayGateway) Enabled() bool {
	return g.client != nil
}

func (g *RazorpayGateway) PublicKey() string {
	return g.keyID
}

func (g *RazorpayGateway) CreateOrder(_ context.Context, req commands.OrderRequest) (*commands.OrderResult, error) {
	if g.client == nil {
		return nil, errs.ErrGatewayUnavailable
	}

	currency := req.Currency
	if currency == "" {
		currency = gatewayCurrency
	}

	notes := make(map[string]interface{}, len(req.Notes))
	for k, v := range req.Notes {
		notes[k] = v
	}

	data := map[string]interface{}{
		"amount":   req.AmountMinor,
		"currency": currency,
		"receipt":  req.Receipt,
		"notes":    notes,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "razorpay order creation failed"), errs.ErrGatewayFailure)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return nil, errs.Mark(errs.New("razorpay order response missing id"), errs.ErrGatewayFailure)
	}

	return &commands.OrderResult{
		OrderID:     orderID,
		AmountMinor: req.AmountMinor,
		Currency:    currency,
	}, nil
}
