package payment

import (
	"errors"
	"time"
)

var (
	// ErrInsufficientFunds is returned when an account or the escrow cannot cover an amount
	ErrInsufficientFunds = errors.New("insufficient funds")

	ErrStatusCodeNotOk = errors.New("payment http.status not ok")
)

type ClientCfg struct {
	// BaseUrl of the payment rail, e.g. https://payments.internal/v1
	BaseUrl  string
	Apikey   string
	Timeout  time.Duration
	RetryMax int
}

type transferReq struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
}
