package components

import (
	"smart-parking/internal/domain/reservation"
	"smart-parking/internal/domain/tariff"
	"smart-parking/internal/pkg/clock"
	"smart-parking/internal/pkg/config"
	"smart-parking/internal/usecase"
	"smart-parking/internal/usecase/commands"
	"smart-parking/internal/usecase/queries"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewTariffCalculator,
	func(calc *tariff.Calculator) *reservation.Factory {
		return reservation.NewFactory(calc)
	},
)

func NewTariffCalculator(cfg config.Config, rules tariff.RuleSource, subs tariff.SubscriptionSource) *tariff.Calculator {
	rate, err := decimal.NewFromString(cfg.Tariff.DefaultHourlyRate)
	if err != nil {
		rate = tariff.DefaultHourlyRate
	}
	return tariff.NewCalculator(rules, subs, rate)
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthUseCase,
		commands.NewReservationUseCase,
		commands.NewSubscriptionUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewQuoteQueries,
		queries.NewTariffQueries,
		queries.NewSubscriptionQueries,
		queries.NewReservationQueries,
		queries.NewUserQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
