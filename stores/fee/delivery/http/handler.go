package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/delivery"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/fee"
	authMiddleware "github.com/x-xyz/escrow/stores/auth/delivery/http/middleware"
)

type handler struct {
	fee fee.UseCase
}

func New(e *echo.Echo, fee fee.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{fee}

	e.GET("/fee", h.get)
	// authorization is decided by the usecase
	e.PUT("/fee", h.set, authMiddleware.Auth())
}

type feeResp struct {
	Rate fee.Rate `json:"rate"`
}

// get
//
//	@Summary		Get fee rate
//	@Tags			fee
//	@Produce		json
//	@Success		200	{object}	object{data=http.feeResp}
//	@Router			/fee [get]
func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	rate, err := h.fee.GetFeeRate(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("fee.GetFeeRate failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, feeResp{rate})
}

// set
//
//	@Summary		Set fee rate
//	@Description	Administrator only, a whole percentage in [0, 100)
//	@Tags			fee
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			payload	body		http.set.payload	true	"payload"
//	@Success		200		{object}	object{data=http.feeResp}
//	@Failure		400
//	@Failure		401
//	@Failure		403
//	@Router			/fee [put]
func (h *handler) set(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type payload struct {
		Rate *fee.Rate `json:"rate" validate:"required"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	if err := h.fee.SetFeeRate(ctx, caller, *p.Rate); err != nil {
		ctx.WithField("err", err).Warn("fee.SetFeeRate failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, feeResp{*p.Rate})
}
