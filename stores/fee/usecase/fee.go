package usecase

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/log"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/fee"
	"github.com/x-xyz/escrow/service/cache"
)

const cacheKey = "rate"

type FeeUseCaseCfg struct {
	Repo       fee.Repo
	Authorizer domain.Authorizer
	// Cache holds the rate between reads, it is dropped on every change
	Cache cache.Service
	// DefaultRate applies until an administrator sets one
	DefaultRate fee.Rate
	Recipient   domain.Address
}

type impl struct {
	repo        fee.Repo
	auth        domain.Authorizer
	cache       cache.Service
	defaultRate fee.Rate
	recipient   domain.Address
	timeNow     func() time.Time
}

func New(cfg *FeeUseCaseCfg) fee.UseCase {
	return &impl{
		repo:        cfg.Repo,
		auth:        cfg.Authorizer,
		cache:       cfg.Cache,
		defaultRate: cfg.DefaultRate,
		recipient:   cfg.Recipient.ToLower(),
		timeNow:     time.Now,
	}
}

func (im *impl) load(c ctx.Ctx) (*fee.Config, error) {
	cfg, err := im.repo.Get(c)
	if errors.Is(err, domain.ErrNotFound) {
		return &fee.Config{Rate: im.defaultRate}, nil
	} else if err != nil {
		c.WithField("err", err).Error("repo.Get failed")
		return nil, err
	}
	return cfg, nil
}

func (im *impl) GetFeeRate(c ctx.Ctx) (fee.Rate, error) {
	cfg := &fee.Config{}
	if err := im.cache.GetByFunc(c, cacheKey, cfg, func() (interface{}, error) {
		return im.load(c)
	}); err != nil {
		c.WithField("err", err).Error("cache.GetByFunc failed")
		return 0, err
	}
	return cfg.Rate, nil
}

func (im *impl) SetFeeRate(c ctx.Ctx, caller domain.Address, rate fee.Rate) error {
	if !im.auth.IsAdministrator(c, caller) {
		return xerrors.Errorf("%s: %w", caller, domain.ErrUnauthorized)
	}
	if err := rate.Validate(); err != nil {
		return xerrors.Errorf("rate %d: %w", rate, err)
	}

	cfg := &fee.Config{Rate: rate, UpdatedBy: caller.ToLower(), UpdatedAt: im.timeNow()}
	if err := im.repo.Set(c, cfg); err != nil {
		c.WithFields(log.Fields{"err": err, "rate": rate}).Error("repo.Set failed")
		return err
	}
	if err := im.cache.Del(c, cacheKey); err != nil {
		c.WithField("err", err).Error("cache.Del failed")
		return err
	}

	c.WithFields(log.Fields{"rate": rate, "caller": caller}).Info("fee rate changed")
	return nil
}

func (im *impl) Split(c ctx.Ctx, amount decimal.Decimal) (*fee.Split, error) {
	rate, err := im.GetFeeRate(c)
	if err != nil {
		return nil, err
	}

	f, proceeds := fee.ComputeSplit(amount, rate)
	return &fee.Split{
		Amount:    amount,
		Rate:      rate,
		Fee:       f,
		Proceeds:  proceeds,
		Recipient: im.recipient,
	}, nil
}
