package fee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain"
)

// Rate is the marketplace fee in percent of a settlement amount
type Rate int64

// MaxRate is the exclusive upper bound of Rate
const MaxRate Rate = 100

var hundred = decimal.NewFromInt(100)

func (r Rate) Validate() error {
	if r < 0 || r >= MaxRate {
		return domain.ErrInvalidConfiguration
	}
	return nil
}

// ComputeSplit splits amount into the operator fee and the seller proceeds.
// fee = floor(amount * rate / 100), so fee + proceeds == amount for every amount.
func ComputeSplit(amount decimal.Decimal, rate Rate) (fee, proceeds decimal.Decimal) {
	fee, _ = amount.Mul(decimal.NewFromInt(int64(rate))).QuoRem(hundred, 0)
	return fee, amount.Sub(fee)
}

// Config is the persisted fee configuration
type Config struct {
	Rate      Rate           `json:"rate" bson:"rate"`
	UpdatedBy domain.Address `json:"updatedBy" bson:"updatedBy"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// Split is the fee policy applied to one settlement
type Split struct {
	Amount    decimal.Decimal `json:"amount"`
	Rate      Rate            `json:"rate"`
	Fee       decimal.Decimal `json:"fee"`
	Proceeds  decimal.Decimal `json:"proceeds"`
	Recipient domain.Address  `json:"recipient"`
}

type Repo interface {
	// Get returns domain.ErrNotFound when the rate was never set
	Get(c ctx.Ctx) (*Config, error)
	Set(c ctx.Ctx, cfg *Config) error
}

type UseCase interface {
	GetFeeRate(c ctx.Ctx) (Rate, error)

	// SetFeeRate checks authorization before the value
	SetFeeRate(c ctx.Ctx, caller domain.Address, rate Rate) error

	// Split applies the current rate to amount
	Split(c ctx.Ctx, amount decimal.Decimal) (*Split, error)
}
