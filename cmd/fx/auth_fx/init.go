package auth_fx

import (
	"go.uber.org/fx"
	"serenestays/internal/api/controllers"
	"serenestays/internal/config"
	"serenestays/pkg/utils"
)

var Module = fx.Provide(
	provideTokenManager, provideCookieOptions, controllers.NewAuthController)

func provideTokenManager(cfg *config.Config) *utils.TokenManager {
	return utils.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL)
}

func provideCookieOptions(cfg *config.Config) controllers.CookieOptions {
	return controllers.CookieOptions{Secure: cfg.CookieSecure}
}
