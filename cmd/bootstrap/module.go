package bootstrap

import (
	"island-eats/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	NotifyModule,
	JanitorModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
