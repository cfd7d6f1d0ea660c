package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain/listing"
	"github.com/x-xyz/escrow/stores/event/repository"
	"github.com/x-xyz/escrow/stores/event/usecase"
)

type resp struct {
	Data   []*listing.Event `json:"data"`
	Status string           `json:"status"`
}

func TestFindAll(t *testing.T) {
	req := require.New(t)

	uc := usecase.New(&usecase.EventUseCaseCfg{Repo: repository.NewMemory()})
	defer uc.Close()
	for _, e := range []listing.Event{
		{Type: listing.EventListed, CollectionId: "0xc", AssetId: "1"},
		{Type: listing.EventBidPlaced, CollectionId: "0xc", AssetId: "1"},
		{Type: listing.EventListed, CollectionId: "0xd", AssetId: "2"},
	} {
		e := e
		req.NoError(uc.Record(ctx.Background(), &e))
	}

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(e, uc)

	cases := []struct {
		url    string
		status int
		count  int
	}{
		{"/events", http.StatusOK, 3},
		{"/events?collection=0xC", http.StatusOK, 2},
		{"/events?collection=0xc&asset=1&type=BidPlaced", http.StatusOK, 1},
		{"/events?limit=1&offset=2", http.StatusOK, 1},
		{"/events?type=Minted", http.StatusBadRequest, 0},
		{"/events?limit=-1", http.StatusBadRequest, 0},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, c.url, nil))
		req.Equal(c.status, rec.Code, c.url)
		if c.status != http.StatusOK {
			continue
		}
		r := resp{}
		req.NoError(json.Unmarshal(rec.Body.Bytes(), &r), c.url)
		req.Equal("success", r.Status, c.url)
		req.Len(r.Data, c.count, c.url)
	}
}
