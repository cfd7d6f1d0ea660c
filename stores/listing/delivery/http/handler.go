package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/delivery"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/listing"
	"github.com/x-xyz/escrow/middleware"
	authMiddleware "github.com/x-xyz/escrow/stores/auth/delivery/http/middleware"
)

const defaultLimit = 50

type handler struct {
	listing listing.UseCase
}

func New(e *echo.Echo, listing listing.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{listing}

	g := e.Group("/listings")
	g.GET("", h.findAll)

	item := g.Group("/:collection/:asset", middleware.IsValidAddress("collection"))
	item.GET("", h.get)
	item.POST("", h.create, authMiddleware.Auth())
	item.DELETE("", h.unlist, authMiddleware.Auth())
	item.PUT("/price", h.changePrice, authMiddleware.Auth())
	item.POST("/bids", h.placeBid, authMiddleware.Auth())
	item.POST("/end", h.endAuction, authMiddleware.Auth())
	item.POST("/buy", h.buy, authMiddleware.Auth())
}

func paramId(c echo.Context) listing.Id {
	return listing.Id{
		CollectionId: domain.Address(c.Param("collection")),
		AssetId:      domain.TokenId(c.Param("asset")),
	}
}

// bind decodes the body into p and validates it
func bind(c echo.Context, p interface{}) error {
	if err := c.Bind(p); err != nil {
		return err
	}
	return c.Validate(p)
}

// findAll
//
//	@Summary		List listings
//	@Tags			listings
//	@Produce		json
//	@Param			offset		query		int		false	"offset"
//	@Param			limit		query		int		false	"limit, defaults to 50"
//	@Param			seller		query		string	false	"seller address"
//	@Param			collection	query		string	false	"collection address"
//	@Param			auction		query		bool	false	"auctions only or fixed price only"
//	@Success		200			{object}	object{data=[]listing.Listing}
//	@Failure		400
//	@Router			/listings [get]
func (h *handler) findAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Offset     int32           `query:"offset"`
		Limit      int32           `query:"limit"`
		Seller     *domain.Address `query:"seller"`
		Collection *domain.Address `query:"collection"`
		Auction    *bool           `query:"auction"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if p.Limit == 0 {
		p.Limit = defaultLimit
	}

	opts := []listing.FindAllOptionsFunc{
		listing.WithPagination(p.Offset, p.Limit),
	}
	if p.Seller != nil {
		opts = append(opts, listing.WithSeller(*p.Seller))
	}
	if p.Collection != nil {
		opts = append(opts, listing.WithCollection(*p.Collection))
	}
	if p.Auction != nil {
		opts = append(opts, listing.WithAuction(*p.Auction))
	}

	res, err := h.listing.FindAll(ctx, opts...)
	if err != nil {
		ctx.WithField("err", err).Warn("listing.FindAll failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// get
//
//	@Summary		Get listing
//	@Tags			listings
//	@Produce		json
//	@Param			collection	path		string	true	"collection address"
//	@Param			asset		path		string	true	"asset id"
//	@Success		200			{object}	object{data=listing.Listing}
//	@Failure		404
//	@Router			/listings/{collection}/{asset} [get]
func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	l, err := h.listing.Get(ctx, paramId(c))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}

// create
//
//	@Summary		List an asset
//	@Description	Moves the asset into marketplace custody, auction sets the starting price
//	@Tags			listings
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			collection	path		string				true	"collection address"
//	@Param			asset		path		string				true	"asset id"
//	@Param			payload		body		http.create.payload	true	"payload"
//	@Success		201			{object}	object{data=listing.Listing}
//	@Failure		400
//	@Failure		409
//	@Failure		502
//	@Router			/listings/{collection}/{asset} [post]
func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type payload struct {
		Price   *decimal.Decimal `json:"price" validate:"required,positive"`
		Auction bool             `json:"auction"`
	}

	p := &payload{}
	if err := bind(c, p); err != nil {
		ctx.WithField("err", err).Warn("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	var (
		l   *listing.Listing
		err error
	)
	if p.Auction {
		l, err = h.listing.ListForAuction(ctx, paramId(c), *p.Price, caller)
	} else {
		l, err = h.listing.List(ctx, paramId(c), *p.Price, caller)
	}
	if err != nil {
		ctx.WithField("err", err).Warn("listing create failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, l)
}

// changePrice
//
//	@Summary		Change price
//	@Description	Seller only, auctions only before the first bid
//	@Tags			listings
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			collection	path		string					true	"collection address"
//	@Param			asset		path		string					true	"asset id"
//	@Param			payload		body		http.changePrice.payload	true	"payload"
//	@Success		200			{object}	object{data=listing.Listing}
//	@Failure		400
//	@Failure		403
//	@Failure		404
//	@Router			/listings/{collection}/{asset}/price [put]
func (h *handler) changePrice(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type payload struct {
		Price *decimal.Decimal `json:"price" validate:"required,positive"`
	}

	p := &payload{}
	if err := bind(c, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	l, err := h.listing.ChangePrice(ctx, paramId(c), caller, *p.Price)
	if err != nil {
		ctx.WithField("err", err).Warn("listing.ChangePrice failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}

// unlist
//
//	@Summary		Unlist
//	@Description	Seller only, returns the asset and refunds the leading bid
//	@Tags			listings
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			collection	path	string	true	"collection address"
//	@Param			asset		path	string	true	"asset id"
//	@Success		200
//	@Failure		403
//	@Failure		404
//	@Router			/listings/{collection}/{asset} [delete]
func (h *handler) unlist(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	if err := h.listing.Unlist(ctx, paramId(c), caller); err != nil {
		ctx.WithField("err", err).Warn("listing.Unlist failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

// placeBid
//
//	@Summary		Place bid
//	@Tags			listings
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			collection	path		string					true	"collection address"
//	@Param			asset		path		string					true	"asset id"
//	@Param			payload		body		http.placeBid.payload	true	"payload"
//	@Success		200			{object}	object{data=listing.Listing}
//	@Failure		400
//	@Failure		409
//	@Failure		502
//	@Router			/listings/{collection}/{asset}/bids [post]
func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type payload struct {
		Amount *decimal.Decimal `json:"amount" validate:"required,positive"`
	}

	p := &payload{}
	if err := bind(c, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	l, err := h.listing.PlaceBid(ctx, paramId(c), caller, *p.Amount)
	if err != nil {
		ctx.WithField("err", err).Warn("listing.PlaceBid failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}

// endAuction
//
//	@Summary		End auction
//	@Description	Seller only, settles the leading bid
//	@Tags			listings
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			collection	path		string	true	"collection address"
//	@Param			asset		path		string	true	"asset id"
//	@Success		200			{object}	object{data=listing.Settlement}
//	@Failure		403
//	@Failure		409
//	@Router			/listings/{collection}/{asset}/end [post]
func (h *handler) endAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	s, err := h.listing.EndAuction(ctx, paramId(c), caller)
	if err != nil {
		ctx.WithField("err", err).Warn("listing.EndAuction failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, s)
}

// buy
//
//	@Summary		Buy
//	@Description	amount must equal the listed price
//	@Tags			listings
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			collection	path		string				true	"collection address"
//	@Param			asset		path		string				true	"asset id"
//	@Param			payload		body		http.buy.payload	true	"payload"
//	@Success		200			{object}	object{data=listing.Settlement}
//	@Failure		400
//	@Failure		404
//	@Failure		502
//	@Router			/listings/{collection}/{asset}/buy [post]
func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type payload struct {
		Amount *decimal.Decimal `json:"amount" validate:"required,positive"`
	}

	p := &payload{}
	if err := bind(c, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	s, err := h.listing.Buy(ctx, paramId(c), caller, *p.Amount)
	if err != nil {
		ctx.WithField("err", err).Warn("listing.Buy failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, s)
}
