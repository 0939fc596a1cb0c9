package components

import (
	"smart-parking/internal/domain/tariff"
	"smart-parking/internal/infra/db"
	"smart-parking/internal/infra/readstore"
	"smart-parking/internal/infra/repository"
	"smart-parking/internal/usecase/commands"
	"smart-parking/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(NewDBTX),
	readstoreModule,
	repositoryModule,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Tariff
		fx.Annotate(
			readstore.NewTariffReadStore,
			fx.As(new(tariff.RuleSource)),
			fx.As(new(queries.TariffViewStore)),
		),
		// Subscription
		fx.Annotate(
			readstore.NewSubscriptionReadStore,
			fx.As(new(tariff.SubscriptionSource)),
			fx.As(new(commands.SubscriptionReadStore)),
			fx.As(new(queries.SubscriptionViewStore)),
		),
		// Spot
		fx.Annotate(
			readstore.NewSpotReadStore,
			fx.As(new(queries.SpotReadStore)),
			fx.As(new(commands.SpotReadStore)),
			fx.As(new(queries.SpotListStore)),
		),
		// Reservation
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewStore)),
			fx.As(new(commands.ReservationReadStore)),
		),
		// User
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(commands.UserReadStore)),
			fx.As(new(queries.UserViewStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			repository.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
		),
		fx.Annotate(
			repository.NewSubscriptionRepository,
			fx.As(new(commands.SubscriptionRepository)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		fx.Annotate(
			repository.NewIdempotencyRepository,
			fx.As(new(commands.IdempotencyRepository)),
		),
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(commands.NotificationRepository)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
