package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

var errStatus = []struct {
	err    error
	status int
}{
	// checked first, a fatal error also wraps the collaborator failure behind it
	{domain.ErrFatalInconsistency, http.StatusInternalServerError},

	{domain.ErrInvalidArgument, http.StatusBadRequest},
	{domain.ErrBidTooLow, http.StatusBadRequest},
	{domain.ErrNoBids, http.StatusBadRequest},
	{domain.ErrInvalidConfiguration, http.StatusBadRequest},
	{domain.ErrInvalidAddress, http.StatusBadRequest},
	{domain.ErrUnauthorized, http.StatusForbidden},
	{domain.ErrNotFound, http.StatusNotFound},
	{query.ErrNotFound, http.StatusNotFound},
	{domain.ErrNotAuction, http.StatusNotFound},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrOperationInProgress, http.StatusConflict},
	{domain.ErrCustodyTransferFailed, http.StatusBadGateway},
	{domain.ErrRefundFailed, http.StatusBadGateway},
	{domain.ErrPaymentFailed, http.StatusBadGateway},
}

// ErrStatus maps a domain error to its http status, fallback is returned for other errors
func ErrStatus(err error, fallback int) int {
	for _, s := range errStatus {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return fallback
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = ErrStatus(err, status)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
