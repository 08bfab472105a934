package bootstrap

import (
	"context"
	"log/slog"

	"mindvale-server/internal/infra/notifier"
	"mindvale-server/internal/pkg/config"

	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		fx.Annotate(
			NewMailer,
			fx.As(new(notifier.Mailer)),
		),
		func(cfg config.Config) config.SMTPConfig { return cfg.SMTP },
		notifier.NewDispatcher,
	),
	fx.Invoke(StartDispatcher),
)

func NewMailer(cfg config.Config, logger *slog.Logger) *notifier.SMTPMailer {
	return notifier.NewSMTPMailer(cfg.SMTP, logger)
}

func StartDispatcher(lc fx.Lifecycle, dispatcher *notifier.Dispatcher, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("starting notification dispatcher")
			go func() {
				defer close(done)
				dispatcher.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
