package users_fx

import (
	"go.uber.org/fx"
	"serenestays/internal/api/controllers"
	"serenestays/internal/models/db_models"
	"serenestays/internal/repositories"
	"serenestays/internal/services"
)

var Module = fx.Provide(
	provideUserService, controllers.NewUserController)

func provideUserService(store repositories.Store) services.UserServiceInterface {
	return services.NewUserService(store.Collection(db_models.UsersCollection))
}
