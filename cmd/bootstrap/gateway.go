package bootstrap

import (
	"log/slog"

	"mindvale-server/internal/infra/gateway"
	"mindvale-server/internal/pkg/config"
	"mindvale-server/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			NewPaymentGateway,
			fx.As(new(commands.PaymentGateway)),
		),
		fx.Annotate(
			NewSignatureSigner,
			fx.As(new(commands.Signer)),
		),
	),
)

func NewPaymentGateway(cfg config.Config, logger *slog.Logger) *gateway.RazorpayGateway {
	return gateway.NewRazorpayGateway(cfg.Razorpay, logger)
}

func NewSignatureSigner(cfg config.Config) *gateway.HMACSigner {
	return gateway.NewHMACSigner(cfg.Razorpay.KeySecret)
}
