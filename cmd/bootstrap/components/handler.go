package components

import (
	"facility-booking/internal/handler"
	"facility-booking/internal/handler/api"
	"facility-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewFacilityHandler,
		api.NewAnalyticsHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
