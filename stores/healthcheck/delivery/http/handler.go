package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/delivery"
	hcdomain "github.com/x-xyz/escrow/domain/healthcheck"
)

type handler struct {
	hc hcdomain.HealthCheckUsecase
}

// New serves GET /health for load balancers, 503 while a backing store is unreachable
func New(e *echo.Echo, hc hcdomain.HealthCheckUsecase) {
	h := &handler{hc: hc}
	e.GET("/health", h.check)
}

// check
//
//	@Summary		Health check
//	@Tags			health
//	@Produce		json
//	@Success		200
//	@Failure		503
//	@Router			/health [get]
func (h *handler) check(c echo.Context) error {
	cont := c.Get("ctx").(ctx.Ctx)
	if err := h.hc.Check(cont); err != nil {
		return delivery.MakeJsonResp(c, http.StatusServiceUnavailable, err.Error())
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{"healthy": "ok"})
}
