package healthcheck

import (
	"github.com/x-xyz/escrow/base/ctx"
)

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(context ctx.Ctx) error
}

// HealthCheckRepo pings every backing store the service depends on
type HealthCheckRepo interface {
	Ping(context ctx.Ctx) error
}
