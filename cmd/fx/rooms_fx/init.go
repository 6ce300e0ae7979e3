package rooms_fx

import (
	"go.uber.org/fx"
	"serenestays/internal/api/controllers"
	"serenestays/internal/models/db_models"
	"serenestays/internal/repositories"
	"serenestays/internal/services"
)

var Module = fx.Provide(
	provideRoomService, controllers.NewRoomController)

func provideRoomService(store repositories.Store) services.RoomServiceInterface {
	return services.NewRoomService(store.Collection(db_models.RoomsCollection))
}
