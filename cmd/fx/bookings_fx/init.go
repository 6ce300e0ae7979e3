package bookings_fx

import (
	"go.uber.org/fx"
	"serenestays/internal/api/controllers"
	"serenestays/internal/models/db_models"
	"serenestays/internal/repositories"
	"serenestays/internal/services"
)

var Module = fx.Provide(
	provideBookingService, provideBookingController,
)

func provideBookingService(store repositories.Store) services.BookingServiceInterface {
	return services.NewBookingService(store.Collection(db_models.BookingsCollection))
}

func provideBookingController(bookingService services.BookingServiceInterface) *controllers.BookingController {
	return controllers.NewBookingController(bookingService)
}
