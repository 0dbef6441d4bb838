package components

import (
	"facility-booking/internal/infra/cache"
	"facility-booking/internal/infra/readstore"
	"facility-booking/internal/infra/repository"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		// Write side
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			repository.NewSiteRepository,
			fx.As(new(commands.SiteRepository)),
		),
		fx.Annotate(
			repository.NewPaymentRepository,
			fx.As(new(commands.PaymentRepository)),
		),
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(commands.NotificationRepository)),
		),
		fx.Annotate(
			repository.NewSettingsRepository,
			fx.As(new(commands.SettingsRepository)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		// Read side
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
			fx.As(new(commands.AvailabilityChecker)),
		),
		fx.Annotate(
			readstore.NewFacilityReadStore,
			fx.As(new(queries.FacilityReadStore)),
		),
		fx.Annotate(
			readstore.NewAnalyticsReadStore,
			fx.As(new(queries.AnalyticsReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		// Optional analytics cache; nil disables caching
		fx.Annotate(
			func(c *cache.SnapshotCache) *cache.SnapshotCache { return c },
			fx.As(new(queries.SnapshotCache)),
		),
	),
)
