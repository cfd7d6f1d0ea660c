package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/delivery"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/listing"
	authMiddleware "github.com/x-xyz/escrow/stores/auth/delivery/http/middleware"
)

const defaultLimit = 50

type handler struct {
	reconciliation listing.ReconciliationUseCase
}

func New(e *echo.Echo, reconciliation listing.ReconciliationUseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{reconciliation}

	g := e.Group("/reconciliations", authMiddleware.Auth())
	g.GET("", h.findAll, authMiddleware.IsAdmin())
	g.POST("/:id/resolve", h.resolve)
}

// findAll
//
//	@Summary		List reconciliations
//	@Description	Administrator only
//	@Tags			reconciliations
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			offset		query		int		false	"offset"
//	@Param			limit		query		int		false	"limit, defaults to 50"
//	@Param			resolved	query		bool	false	"resolved"
//	@Success		200			{object}	object{data=[]listing.Reconciliation}
//	@Failure		403
//	@Router			/reconciliations [get]
func (h *handler) findAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Offset   int32 `query:"offset"`
		Limit    int32 `query:"limit"`
		Resolved *bool `query:"resolved"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if p.Limit == 0 {
		p.Limit = defaultLimit
	}

	opts := []listing.ReconciliationFindAllOptionsFunc{
		listing.ReconciliationWithPagination(p.Offset, p.Limit),
	}
	if p.Resolved != nil {
		opts = append(opts, listing.ReconciliationWithResolved(*p.Resolved))
	}

	recs, err := h.reconciliation.FindAll(ctx, opts...)
	if err != nil {
		ctx.WithField("err", err).Warn("reconciliation.FindAll failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, recs)
}

// resolve
//
//	@Summary		Resolve reconciliation
//	@Description	Administrator only, retries the owed transfer
//	@Tags			reconciliations
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id	path		string	true	"reconciliation id"
//	@Success		200	{object}	object{data=listing.Reconciliation}
//	@Failure		403
//	@Failure		404
//	@Failure		409
//	@Router			/reconciliations/{id}/resolve [post]
func (h *handler) resolve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	r, err := h.reconciliation.Resolve(ctx, caller, c.Param("id"))
	if err != nil {
		ctx.WithField("err", err).Warn("reconciliation.Resolve failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, r)
}
