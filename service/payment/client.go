package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/log"
	"github.com/x-xyz/escrow/domain"
)

const (
	apikeyHeader      = "X-API-KEY"
	idempotencyHeader = "Idempotency-Key"
)

type client struct {
	baseUrl string
	apikey  string
	http    *retryablehttp.Client
}

// NewClient returns the fund service of a remote payment rail. Every call
// carries an idempotency key so retried requests move funds once.
func NewClient(cfg *ClientCfg) domain.FundService {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = cfg.RetryMax
	retryClient.HTTPClient.Timeout = cfg.Timeout

	return &client{
		baseUrl: cfg.BaseUrl,
		apikey:  cfg.Apikey,
		http:    retryClient,
	}
}

func (cl *client) Collect(c ctx.Ctx, from domain.Address, amount decimal.Decimal) error {
	return cl.post(c, "collections", from, amount)
}

func (cl *client) Pay(c ctx.Ctx, to domain.Address, amount decimal.Decimal) error {
	return cl.post(c, "payouts", to, amount)
}

func (cl *client) post(c ctx.Ctx, path string, account domain.Address, amount decimal.Decimal) error {
	body, err := json.Marshal(transferReq{Account: account.ToLowerStr(), Amount: amount.String()})
	if err != nil {
		return err
	}

	u := fmt.Sprintf("%s/%s", cl.baseUrl, path)
	req, err := retryablehttp.NewRequest(http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		c.WithFields(log.Fields{"url": u, "err": err}).Error("retryablehttp.NewRequest failed")
		return err
	}
	req = req.WithContext(c)
	req.Header.Set(apikeyHeader, cl.apikey)
	req.Header.Set(idempotencyHeader, uuid.New().String())
	req.Header.Set("Content-Type", "application/json")

	resp, err := cl.http.Do(req)
	if err != nil {
		c.WithFields(log.Fields{"url": u, "err": err}).Error("http.Do failed")
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusPaymentRequired:
		return xerrors.Errorf("%s %s: %w", account, amount, ErrInsufficientFunds)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		msg, _ := ioutil.ReadAll(resp.Body)
		c.WithFields(log.Fields{"url": u, "statusCode": resp.StatusCode, "body": string(msg)}).Error("payment rejected")
		return xerrors.Errorf("status %d: %w", resp.StatusCode, ErrStatusCodeNotOk)
	}
	return nil
}
