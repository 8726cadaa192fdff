package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"island-eats/internal/infra/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

const expiredKeySweepInterval = time.Hour

var JanitorModule = fx.Module("janitor",
	fx.Invoke(startIdempotencyJanitor),
)

// startIdempotencyJanitor sweeps abandoned processing keys so a checkout
// that crashed mid-flight does not pin its idempotency key until manual
// cleanup. Completed keys are kept for replay and left alone.
func startIdempotencyJanitor(lc fx.Lifecycle, pool *pgxpool.Pool) {
	repo := repository.NewIdempotencyRepository()
	runCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				ticker := time.NewTicker(expiredKeySweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-runCtx.Done():
						return
					case <-ticker.C:
						deleted, err := repo.DeleteExpired(runCtx, pool)
						if err != nil {
							slog.Warn("expired idempotency key sweep failed", "error", err.Error())
							continue
						}
						if deleted > 0 {
							slog.Info("swept expired idempotency keys", "deleted", deleted)
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}
