package subscriptions_fx

import (
	"go.uber.org/fx"
	"serenestays/internal/api/controllers"
	"serenestays/internal/models/db_models"
	"serenestays/internal/repositories"
	"serenestays/internal/services"
)

var Module = fx.Provide(
	NewSubscriptionService, controllers.NewSubscriptionController)

func NewSubscriptionService(store repositories.Store) services.SubscriptionServiceInterface {
	return services.NewSubscriptionService(store.Collection(db_models.SubscriptionsCollection))
}
