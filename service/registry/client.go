package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
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

// NewClient returns the custody service of a remote asset registry. Transfers
// carry an idempotency key so retried requests move the asset once.
func NewClient(cfg *ClientCfg) domain.CustodyService {
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

func (cl *client) Transfer(c ctx.Ctx, collection domain.Address, asset domain.TokenId, from, to domain.Address) error {
	body, err := json.Marshal(transferReq{
		Collection: collection.ToLowerStr(),
		Asset:      string(asset),
		From:       from.ToLowerStr(),
		To:         to.ToLowerStr(),
	})
	if err != nil {
		return err
	}

	u := fmt.Sprintf("%s/transfers", cl.baseUrl)
	status, _, err := cl.do(c, http.MethodPost, u, body)
	if err != nil {
		return err
	}

	switch {
	case status == http.StatusConflict:
		return xerrors.Errorf("%s/%s from %s: %w", collection, asset, from, ErrNotHolder)
	case status < 200 || status >= 300:
		c.WithFields(log.Fields{"url": u, "statusCode": status}).Error("registry transfer rejected")
		return xerrors.Errorf("status %d: %w", status, ErrStatusCodeNotOk)
	}
	return nil
}

func (cl *client) HolderOf(c ctx.Ctx, collection domain.Address, asset domain.TokenId) (domain.Address, error) {
	u := fmt.Sprintf("%s/holders/%s/%s", cl.baseUrl, url.PathEscape(collection.ToLowerStr()), url.PathEscape(string(asset)))
	status, body, err := cl.do(c, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	switch {
	case status == http.StatusNotFound:
		return "", domain.ErrNotFound
	case status != http.StatusOK:
		c.WithFields(log.Fields{"url": u, "statusCode": status}).Error("registry holder lookup failed")
		return "", xerrors.Errorf("status %d: %w", status, ErrStatusCodeNotOk)
	}

	resp := holderResp{}
	if err := json.Unmarshal(body, &resp); err != nil {
		c.WithField("err", err).Error("json.Unmarshal failed")
		return "", err
	}
	return domain.Address(resp.Holder).ToLower(), nil
}

func (cl *client) do(c ctx.Ctx, method, u string, body []byte) (int, []byte, error) {
	var payload interface{}
	if body != nil {
		payload = bytes.NewReader(body)
	}

	req, err := retryablehttp.NewRequest(method, u, payload)
	if err != nil {
		c.WithFields(log.Fields{"url": u, "err": err}).Error("retryablehttp.NewRequest failed")
		return 0, nil, err
	}
	req = req.WithContext(c)
	req.Header.Set(apikeyHeader, cl.apikey)
	req.Header.Set("Content-Type", "application/json")
	if method != http.MethodGet {
		req.Header.Set(idempotencyHeader, uuid.New().String())
	}

	resp, err := cl.http.Do(req)
	if err != nil {
		c.WithFields(log.Fields{"url": u, "err": err}).Error("http.Do failed")
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		c.WithFields(log.Fields{"url": u, "err": err}).Error("failed to read body")
		return 0, nil, err
	}
	return resp.StatusCode, data, nil
}
