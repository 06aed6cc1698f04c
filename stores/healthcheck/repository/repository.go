package repository

import (
	"golang.org/x/xerrors"

	"github.com/rebooked/goapi/base/ctx"
	hcdomain "github.com/rebooked/goapi/domain/healthcheck"
	"github.com/rebooked/goapi/domain/keys"
	"github.com/rebooked/goapi/service/cache"
)

type impl struct {
	cache cache.Service
}

func New(cache cache.Service) hcdomain.HealthCheckRepo {
	return &impl{cache: cache}
}

// Ping round-trips a marker through the cache layer
func (im *impl) Ping(c ctx.Ctx) error {
	key := keys.CacheKey(keys.PfxHealthCheck, "ping")
	if err := im.cache.Set(c, key, "ok"); err != nil {
		return xerrors.Errorf("cache set: %w", err)
	}

	var out string
	if err := im.cache.Get(c, key, &out); err != nil {
		return xerrors.Errorf("cache get: %w", err)
	}
	if out != "ok" {
		return xerrors.New("cache round-trip mismatch")
	}
	return nil
}
