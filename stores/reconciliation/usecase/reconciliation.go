package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/log"
	"github.com/x-xyz/escrow/base/metrics"
	"github.com/x-xyz/escrow/base/ptr"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/listing"
)

type ReconciliationUseCaseCfg struct {
	Repo       listing.ReconciliationRepo
	Locker     listing.Locker
	Authorizer domain.Authorizer
	Custody    domain.CustodyService
	Fund       domain.FundService
	// Marketplace is the custody account holding listed assets
	Marketplace domain.Address
}

type impl struct {
	repo        listing.ReconciliationRepo
	locker      listing.Locker
	authorizer  domain.Authorizer
	custody     domain.CustodyService
	fund        domain.FundService
	marketplace domain.Address

	met     metrics.Service
	timeNow func() time.Time
}

func New(cfg *ReconciliationUseCaseCfg) listing.ReconciliationUseCase {
	return &impl{
		repo:        cfg.Repo,
		locker:      cfg.Locker,
		authorizer:  cfg.Authorizer,
		custody:     cfg.Custody,
		fund:        cfg.Fund,
		marketplace: cfg.Marketplace.ToLower(),
		met:         metrics.New("reconciliation"),
		timeNow:     time.Now,
	}
}

func (im *impl) Record(c ctx.Ctx, recs ...*listing.Reconciliation) error {
	now := im.timeNow()
	for _, r := range recs {
		if r.ReconciliationId == "" {
			r.ReconciliationId = uuid.New().String()
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		r.Resolved = false
		if err := im.repo.Insert(c, r); err != nil {
			c.WithFields(log.Fields{"err": err, "reconciliation": *r}).Error("repo.Insert failed")
			return err
		}
		im.met.BumpSum("recorded", 1, "reason", string(r.Reason))
	}
	return nil
}

func (im *impl) FindAll(c ctx.Ctx, opts ...listing.ReconciliationFindAllOptionsFunc) ([]*listing.Reconciliation, error) {
	res, err := im.repo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}

// Resolve makes the owed transfer of an open record and marks it resolved.
// Records without a payee only get marked.
func (im *impl) Resolve(c ctx.Ctx, caller domain.Address, id string) (*listing.Reconciliation, error) {
	caller = caller.ToLower()
	c = ctx.WithValues(c, map[string]interface{}{"reconciliation": id, "caller": caller})

	if !im.authorizer.IsAdministrator(c, caller) {
		return nil, xerrors.Errorf("resolve %s by %s: %w", id, caller, domain.ErrUnauthorized)
	}

	r, err := im.repo.FindOne(c, id)
	if err != nil {
		c.WithField("err", err).Warn("repo.FindOne failed")
		return nil, err
	}

	unlock, err := im.locker.Lock(c, listing.Id{CollectionId: r.CollectionId, AssetId: r.AssetId})
	if err != nil {
		c.WithField("err", err).Warn("locker.Lock failed")
		return nil, err
	}
	defer unlock()

	// read again under the guard, another resolve may have finished meanwhile
	if r, err = im.repo.FindOne(c, id); err != nil {
		c.WithField("err", err).Error("repo.FindOne failed")
		return nil, err
	}
	if r.Resolved {
		return nil, xerrors.Errorf("reconciliation %s already resolved: %w", id, domain.ErrConflict)
	}

	if err := im.settle(c, r); err != nil {
		c.WithFields(log.Fields{"err": err, "reason": r.Reason}).Error("settle failed")
		im.met.BumpSum("resolve", 1, "reason", string(r.Reason), "result", "failed")
		return nil, err
	}

	now := im.timeNow()
	patchable := listing.ReconciliationPatchable{
		Resolved:   ptr.Bool(true),
		ResolvedBy: &caller,
		ResolvedAt: ptr.Time(now),
	}
	if err := im.repo.Update(ctx.Detach(c), id, patchable); err != nil {
		// the transfer went through, a retry would pay twice
		c.WithFields(log.Fields{"err": err, "reconciliation": *r}).Error("repo.Update failed after settling")
		return nil, xerrors.Errorf("mark %s resolved: %v: %w", id, err, domain.ErrFatalInconsistency)
	}

	r.Resolved = true
	r.ResolvedBy = caller
	r.ResolvedAt = &now
	c.WithField("reason", r.Reason).Info("reconciliation resolved")
	im.met.BumpSum("resolve", 1, "reason", string(r.Reason), "result", "ok")
	return r, nil
}

func (im *impl) settle(c ctx.Ctx, r *listing.Reconciliation) error {
	if r.Payee.IsEmpty() {
		return nil
	}

	switch r.Reason {
	case listing.ReasonCustodyUnreturned:
		if err := im.custody.Transfer(c, r.CollectionId, r.AssetId, im.marketplace, r.Payee); err != nil {
			return xerrors.Errorf("return %s/%s to %s: %v: %w", r.CollectionId, r.AssetId, r.Payee, err, domain.ErrCustodyTransferFailed)
		}
	case listing.ReasonRefundUnpaid:
		if !r.Amount.IsPositive() {
			return nil
		}
		if err := im.fund.Pay(c, r.Payee, r.Amount); err != nil {
			return xerrors.Errorf("refund %s to %s: %v: %w", r.Amount, r.Payee, err, domain.ErrRefundFailed)
		}
	default:
		if !r.Amount.IsPositive() {
			return nil
		}
		if err := im.fund.Pay(c, r.Payee, r.Amount); err != nil {
			return xerrors.Errorf("pay %s to %s: %v: %w", r.Amount, r.Payee, err, domain.ErrPaymentFailed)
		}
	}
	return nil
}
