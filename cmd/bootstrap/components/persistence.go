package components

import (
	"island-eats/internal/infra/db"
	"island-eats/internal/infra/memory"
	"island-eats/internal/infra/readstore"
	"island-eats/internal/infra/repository"
	"island-eats/internal/infra/uow"
	"island-eats/internal/usecase/commands"
	"island-eats/internal/usecase/queries"
	"island-eats/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// User
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		// Drop
		fx.Annotate(
			readstore.NewDropReadStore,
			fx.As(new(queries.DropReadStore)),
		),
		// Order
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		// Idempotency is used outside the transactional path too, so it is
		// provided directly in addition to living on the Tx.
		fx.Annotate(
			repository.NewIdempotencyRepository,
			fx.As(new(shared.IdempotencyRepository)),
		),
		// Cart (in-process, per user session)
		fx.Annotate(
			memory.NewCartStore,
			fx.As(new(commands.CartStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
