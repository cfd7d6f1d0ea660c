package usecase

import (
	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/metrics"
	hcdomain "github.com/x-xyz/escrow/domain/healthcheck"
)

type impl struct {
	repo hcdomain.HealthCheckRepo
	met  metrics.Service
}

// New creates new healthCheckUsecase object representation of HealthCheckUsecase interface
func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repo: repo,
		met:  metrics.New("healthcheck"),
	}
}

func (im *impl) Check(context ctx.Ctx) error {
	if err := im.repo.Ping(context); err != nil {
		im.met.BumpSum("check", 1, "result", "failed")
		return err
	}
	im.met.BumpSum("check", 1, "result", "ok")
	return nil
}
