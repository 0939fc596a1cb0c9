package components

import (
	"smart-parking/internal/handler"
	"smart-parking/internal/handler/api"
	"smart-parking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewQuoteHandler,
		api.NewReservationHandler,
		api.NewSubscriptionHandler,
		api.NewTariffHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
