package memcache_fx

import (
	"go.uber.org/fx"

	mem "vipgate/pkg/memcache"
)

var Module = fx.Provide(provideRateLimiter)

func provideRateLimiter() mem.RateLimiter {
	return mem.NewTTLRateLimiter()
}
