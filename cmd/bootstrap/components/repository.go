package components

import (
	"mindvale-server/internal/infra/readstore"
	repo_impl "mindvale-server/internal/infra/repository"
	"mindvale-server/internal/usecase/commands"
	"mindvale-server/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewProviderRepository,
			fx.As(new(commands.ProviderRepository)),
		),
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		// Concrete type for the dispatcher, interface for the commands.
		repo_impl.NewNotificationRepository,
		fx.Annotate(
			repo_impl.NewNotificationRepository,
			fx.As(new(commands.NotificationRepository)),
		),
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewProviderReadStore,
			fx.As(new(queries.ProviderReadStore)),
		),
	),
)
