package registry

import (
	"errors"
	"time"
)

var (
	// ErrNotHolder is returned when from does not hold the asset
	ErrNotHolder = errors.New("not the holder")

	ErrStatusCodeNotOk = errors.New("registry http.status not ok")
)

type ClientCfg struct {
	// BaseUrl of the asset registry, e.g. https://registry.internal/v1
	BaseUrl  string
	Apikey   string
	Timeout  time.Duration
	RetryMax int
}

type transferReq struct {
	Collection string `json:"collection"`
	Asset      string `json:"asset"`
	From       string `json:"from"`
	To         string `json:"to"`
}

type holderResp struct {
	Holder string `json:"holder"`
}
