package components

import (
	"mindvale-server/internal/domain/schedule"
	"mindvale-server/internal/pkg/clock"
	"mindvale-server/internal/pkg/config"
	"mindvale-server/internal/usecase/commands"
	"mindvale-server/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewScheduleHours,
)

func NewScheduleHours(cfg config.Config) (*schedule.Hours, error) {
	return schedule.NewHours(cfg.Schedule.BusinessHours, cfg.Schedule.ExcludedWeekdays)
}

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewProviderQueries,
		NewAvailabilityQueries,
	),
)

func NewAvailabilityQueries(
	providers queries.ProviderReadStore,
	hours *schedule.Hours,
	clk clock.Clock,
	cfg config.Config,
) queries.AvailabilityQueries {
	return queries.NewAvailabilityQueries(providers, hours, clk, cfg.Schedule.CandidateDates)
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewPaymentCommands,
		commands.NewSweepCommands,
	),
)
