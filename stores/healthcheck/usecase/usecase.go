package usecase

import (
	"github.com/rebooked/goapi/base/ctx"
	hcdomain "github.com/rebooked/goapi/domain/healthcheck"
)

type impl struct {
	repo hcdomain.HealthCheckRepo
}

func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{repo: repo}
}

func (im *impl) Check(c ctx.Ctx) error {
	return im.repo.Ping(c)
}
