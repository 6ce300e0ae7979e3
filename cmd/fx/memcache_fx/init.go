package memcache_fx

import (
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	mem "serenestays/pkg/memcache"
)

const sweepInterval = 10 * time.Minute

var Module = fx.Options(
	fx.Provide(provideRevokedTokens),
	fx.Invoke(startSweeper),
)

func provideRevokedTokens() mem.RevokedTokenStore {
	return mem.NewRevokedTokens()
}

func startSweeper(lc fx.Lifecycle, store mem.RevokedTokenStore, logger *zap.Logger) {
	done := make(chan struct{})
	ticker := time.NewTicker(sweepInterval)

	lc.Append(fx.StartStopHook(
		func() {
			go func() {
				for {
					select {
					case <-ticker.C:
						if n := store.Sweep(); n > 0 {
							logger.Debug("swept revoked tokens", zap.Int("removed", n))
						}
					case <-done:
						return
					}
				}
			}()
		},
		func() {
			ticker.Stop()
			close(done)
		},
	))
}
