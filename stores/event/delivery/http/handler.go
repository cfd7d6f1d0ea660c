package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/delivery"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/listing"
)

const defaultLimit = 50

type handler struct {
	event listing.EventUseCase
}

func New(e *echo.Echo, event listing.EventUseCase) {
	h := &handler{event}

	e.GET("/events", h.findAll)
}

// findAll
//
//	@Summary		List events
//	@Description	Newest first
//	@Tags			events
//	@Produce		json
//	@Param			offset		query		int		false	"offset"
//	@Param			limit		query		int		false	"limit, defaults to 50"
//	@Param			collection	query		string	false	"collection address"
//	@Param			asset		query		string	false	"asset id"
//	@Param			type		query		string	false	"event type"
//	@Success		200			{object}	object{data=[]listing.Event}
//	@Failure		400
//	@Router			/events [get]
func (h *handler) findAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Offset     int32              `query:"offset"`
		Limit      int32              `query:"limit"`
		Collection *domain.Address    `query:"collection"`
		Asset      *domain.TokenId    `query:"asset"`
		Type       *listing.EventType `query:"type"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if p.Limit == 0 {
		p.Limit = defaultLimit
	}

	opts := []listing.EventFindAllOptionsFunc{
		listing.EventWithPagination(p.Offset, p.Limit),
	}
	if p.Collection != nil {
		opts = append(opts, listing.EventWithCollection(*p.Collection))
	}
	if p.Asset != nil {
		opts = append(opts, listing.EventWithAsset(*p.Asset))
	}
	if p.Type != nil {
		opts = append(opts, listing.EventWithType(*p.Type))
	}

	events, err := h.event.FindAll(ctx, opts...)
	if err != nil {
		ctx.WithField("err", err).Warn("event.FindAll failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, events)
}
