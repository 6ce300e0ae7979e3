package config_fx

import (
	"go.uber.org/fx"
	"serenestays/internal/config"
)

var Module = fx.Provide(config.Load)
