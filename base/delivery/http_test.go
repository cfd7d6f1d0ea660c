package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrow/domain"
)

func TestMakeJsonResp(t *testing.T) {
	cases := []struct {
		name   string
		status int
		data   interface{}
		want   int
		body   JsonResponse
	}{
		{"success", http.StatusOK, "ok", http.StatusOK, JsonResponse{"ok", JsonResponseStatusSuccess}},
		{"wrapped not found", http.StatusInternalServerError, xerrors.Errorf("0xc/1: %w", domain.ErrNotFound), http.StatusNotFound, JsonResponse{"0xc/1: Your requested Item is not found", JsonResponseStatusFail}},
		{"bid too low", http.StatusInternalServerError, domain.ErrBidTooLow, http.StatusBadRequest, JsonResponse{"bid too low", JsonResponseStatusFail}},
		{"unauthorized", http.StatusInternalServerError, domain.ErrUnauthorized, http.StatusForbidden, JsonResponse{"unauthorized", JsonResponseStatusFail}},
		{"in progress", http.StatusInternalServerError, domain.ErrOperationInProgress, http.StatusConflict, JsonResponse{"operation in progress", JsonResponseStatusFail}},
		{"custody", http.StatusInternalServerError, domain.ErrCustodyTransferFailed, http.StatusBadGateway, JsonResponse{"custody transfer failed", JsonResponseStatusFail}},
		{"fatal wins", http.StatusInternalServerError, xerrors.Errorf("%v: %w", domain.ErrPaymentFailed, domain.ErrFatalInconsistency), http.StatusInternalServerError, JsonResponse{"payment failed: fatal inconsistency", JsonResponseStatusFail}},
		{"unknown", http.StatusInternalServerError, errors.New("boom"), http.StatusInternalServerError, JsonResponse{"boom", JsonResponseStatusFail}},
	}

	e := echo.New()
	for _, c := range cases {
		rec := httptest.NewRecorder()
		ec := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		require.NoError(t, MakeJsonResp(ec, c.status, c.data), c.name)
		require.Equal(t, c.want, rec.Code, c.name)

		body := JsonResponse{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), c.name)
		require.Equal(t, c.body, body, c.name)
	}
}
