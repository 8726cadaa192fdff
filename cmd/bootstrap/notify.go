package bootstrap

import (
	"context"

	"island-eats/internal/infra/notify"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		NewListener,
	),
)

func NewListener(lc fx.Lifecycle, pool *pgxpool.Pool) *notify.Listener {
	listener := notify.NewListener(pool)

	runCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go listener.Run(runCtx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})

	return listener
}
