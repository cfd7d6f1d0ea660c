package usecase

import (
	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/log"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/fee"
	"github.com/x-xyz/escrow/domain/listing"
)

// takeCustody moves the asset from owner into marketplace custody. It is
// undone by handing the asset back if the operation fails later on.
func (im *impl) takeCustody(c ctx.Ctx, o *op, owner domain.Address) error {
	id := o.id
	if err := im.custody.Transfer(c, id.CollectionId, id.AssetId, owner, im.marketplace); err != nil {
		c.WithFields(log.Fields{"err": err, "from": owner}).Error("custody.Transfer failed")
		return xerrors.Errorf("take custody from %s: %v: %w", owner, err, domain.ErrCustodyTransferFailed)
	}
	o.step("custody %s -> marketplace", owner)
	o.undo = append(o.undo, compensation{
		desc:   "return custody to " + string(owner),
		reason: listing.ReasonCustodyUnreturned,
		payee:  owner,
		amount: decimal.Zero,
		run: func(c ctx.Ctx) error {
			return im.custody.Transfer(c, id.CollectionId, id.AssetId, im.marketplace, owner)
		},
	})
	return nil
}

// releaseCustody moves the asset out of marketplace custody, the point of no
// return. Value escrowed earlier in the operation now belongs to the settlement.
func (im *impl) releaseCustody(c ctx.Ctx, o *op, to domain.Address) error {
	id := o.id
	if err := im.custody.Transfer(c, id.CollectionId, id.AssetId, im.marketplace, to); err != nil {
		c.WithFields(log.Fields{"err": err, "to": to}).Error("custody.Transfer failed")
		return xerrors.Errorf("release custody to %s: %v: %w", to, err, domain.ErrCustodyTransferFailed)
	}
	o.step("custody marketplace -> %s", to)
	o.final = true
	o.undo = nil
	return nil
}

// collect escrows the value attached to a bid or purchase. It is undone by
// paying the amount back.
func (im *impl) collect(c ctx.Ctx, o *op, from domain.Address, amount decimal.Decimal) error {
	if err := im.fund.Collect(c, from, amount); err != nil {
		c.WithFields(log.Fields{"err": err, "from": from, "amount": amount}).Error("fund.Collect failed")
		return xerrors.Errorf("collect %s from %s: %v: %w", amount, from, err, domain.ErrPaymentFailed)
	}
	o.step("collect %s from %s", amount, from)
	o.undo = append(o.undo, compensation{
		desc:   "pay back " + amount.String() + " to " + string(from),
		reason: listing.ReasonRefundUnpaid,
		payee:  from,
		amount: amount,
		run: func(c ctx.Ctx) error {
			return im.fund.Pay(c, from, amount)
		},
	})
	return nil
}

// refund returns an escrowed bid to its bidder
func (im *impl) refund(c ctx.Ctx, o *op, to domain.Address, amount decimal.Decimal) error {
	if err := im.fund.Pay(c, to, amount); err != nil {
		c.WithFields(log.Fields{"err": err, "to": to, "amount": amount}).Error("fund.Pay refund failed")
		return xerrors.Errorf("refund %s to %s: %v: %w", amount, to, err, domain.ErrRefundFailed)
	}
	o.step("refund %s to %s", amount, to)
	o.final = true
	return nil
}

// payout distributes a settlement after the asset left custody. Failures are
// owed transfers, the remaining payments are still attempted.
func (im *impl) payout(c ctx.Ctx, o *op, seller domain.Address, split *fee.Split) {
	pay := func(reason listing.ReconciliationReason, to domain.Address, amount decimal.Decimal) {
		if amount.IsZero() {
			return
		}
		if err := im.fund.Pay(c, to, amount); err != nil {
			c.WithFields(log.Fields{"err": err, "to": to, "amount": amount, "reason": reason}).Error("fund.Pay payout failed")
			o.owe(reason, to, amount, xerrors.Errorf("pay %s %s to %s: %v: %w", reason, amount, to, err, domain.ErrPaymentFailed))
			return
		}
		o.step("pay %s %s to %s", reason, amount, to)
	}

	pay(listing.ReasonFeeUnpaid, split.Recipient, split.Fee)
	pay(listing.ReasonProceedsUnpaid, seller, split.Proceeds)
}
