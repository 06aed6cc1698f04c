package healthcheck

import (
	"github.com/rebooked/goapi/base/ctx"
)

// HealthCheckRepo probes the service's critical dependencies
type HealthCheckRepo interface {
	Ping(ctx.Ctx) error
}

type HealthCheckUsecase interface {
	Check(ctx.Ctx) error
}
