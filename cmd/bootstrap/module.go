package bootstrap

import (
	"mindvale-server/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	AuthModule,
	GatewayModule,
	MetricsModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
	NotifierModule,
	SweeperModule,
)
