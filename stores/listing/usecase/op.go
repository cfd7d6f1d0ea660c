package usecase

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/log"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/listing"
)

// compensation reverses one collaborator call of a failed operation
type compensation struct {
	desc   string
	reason listing.ReconciliationReason
	payee  domain.Address
	amount decimal.Decimal
	run    func(c ctx.Ctx) error
}

// op is the state of one lifecycle operation
type op struct {
	name   string
	id     listing.Id
	events []listing.Event

	// calls made to collaborators, in order
	steps []string
	// reversible calls, undone in reverse when the operation fails
	undo []compensation
	// an irreversible call succeeded, the operation can no longer fail cleanly
	final bool

	// owed transfers recorded after the point of no return
	fatal error
	recs  []*listing.Reconciliation
}

func (o *op) step(format string, args ...interface{}) {
	o.steps = append(o.steps, fmt.Sprintf(format, args...))
}

func (o *op) reconciliation(reason listing.ReconciliationReason, payee domain.Address, amount decimal.Decimal, cause error) *listing.Reconciliation {
	return &listing.Reconciliation{
		ReconciliationId: uuid.New().String(),
		Operation:        o.name,
		CollectionId:     o.id.CollectionId,
		AssetId:          o.id.AssetId,
		Payee:            payee,
		Amount:           amount,
		Reason:           reason,
		Cause:            cause.Error(),
	}
}

// owe records a transfer that failed after the point of no return, the
// operation still commits and returns the first cause as fatal
func (o *op) owe(reason listing.ReconciliationReason, payee domain.Address, amount decimal.Decimal, cause error) {
	if o.fatal == nil {
		o.fatal = cause
	}
	o.recs = append(o.recs, o.reconciliation(reason, payee, amount, cause))
}

func (o *op) emit(typ listing.EventType, l *listing.Listing, counterparty domain.Address, price decimal.Decimal) {
	o.events = append(o.events, listing.Event{
		EventId:      uuid.New().String(),
		Type:         typ,
		CollectionId: l.CollectionId,
		AssetId:      l.AssetId,
		Seller:       l.Seller,
		Counterparty: counterparty,
		Price:        price,
	})
}

// run executes fn under the per key guard and inside one store transaction.
// Events and owed transfers are written in the same transaction. When the
// transaction fails its reversible collaborator calls are undone, a failure
// that cannot be undone is a fatal inconsistency.
func (im *impl) run(c ctx.Ctx, name string, id listing.Id, caller domain.Address, fn func(ctx.Ctx, *op) error) error {
	c = ctx.WithValues(c, map[string]interface{}{
		"op":      name,
		"listing": id.String(),
		"caller":  caller,
	})
	defer im.met.BumpTime("op.time", "op", name).End()

	unlock, err := im.locker.Lock(c, id)
	if err != nil {
		c.WithField("err", err).Warn("locker.Lock failed")
		im.met.BumpSum("op", 1, "op", name, "result", "locked")
		return err
	}
	defer unlock()

	o := &op{name: name, id: id}
	err = im.tx.RunWithTransaction(c, func(tx ctx.Ctx) error {
		if err := fn(tx, o); err != nil {
			return err
		}
		if len(o.recs) > 0 {
			if err := im.reconciliations.Record(tx, o.recs...); err != nil {
				return err
			}
		}
		now := im.timeNow()
		for i := range o.events {
			o.events[i].Time = now
			if err := im.events.Record(tx, &o.events[i]); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		// the store rolled back, whether fn or the commit failed
		if o.final {
			o.abandon(err)
			return im.fail(c, o, err, true)
		}
		if !im.compensate(c, o) {
			return im.fail(c, o, err, true)
		}
		im.met.BumpSum("op", 1, "op", name, "result", "rejected")
		return err
	}

	im.events.Publish(ctx.Detach(c), o.events...)

	if o.fatal != nil {
		return im.fail(c, o, o.fatal, false)
	}
	im.met.BumpSum("op", 1, "op", name, "result", "ok")
	return nil
}

// compensate undoes the reversible calls of a failed operation, failed undos
// are turned into owed transfers
func (im *impl) compensate(c ctx.Ctx, o *op) bool {
	ok := true
	for i := len(o.undo) - 1; i >= 0; i-- {
		comp := o.undo[i]
		if err := comp.run(c); err != nil {
			c.WithFields(log.Fields{"err": err, "compensation": comp.desc}).Error("compensation failed")
			o.owe(comp.reason, comp.payee, comp.amount, xerrors.Errorf("%s: %w", comp.desc, err))
			ok = false
			continue
		}
		o.step("%s", comp.desc)
	}
	o.undo = nil
	return ok
}

// abandon turns the reversible calls still pending after the point of no
// return into owed transfers, the store no longer accounts for their value
func (o *op) abandon(cause error) {
	for _, comp := range o.undo {
		o.owe(comp.reason, comp.payee, comp.amount, xerrors.Errorf("%s: %v: %w", comp.desc, cause, domain.ErrFatalInconsistency))
	}
	o.undo = nil
}

// fail surfaces a fatal inconsistency. uncommitted is set when the store
// transaction did not go through, owed transfers are then written on their own.
func (im *impl) fail(c ctx.Ctx, o *op, cause error, uncommitted bool) error {
	if uncommitted {
		if o.final || len(o.recs) == 0 {
			o.recs = append(o.recs, o.reconciliation(
				listing.ReasonCommitFailed, "", decimal.Zero,
				xerrors.Errorf("%v, transfers: %s", cause, strings.Join(o.steps, "; ")),
			))
		}
		if err := im.reconciliations.Record(ctx.Detach(c), o.recs...); err != nil {
			c.WithFields(log.Fields{"err": err, "reconciliations": o.recs}).Error("failed to record reconciliations")
		}
	}

	c.WithFields(log.Fields{
		"err":             cause,
		"transfers":       o.steps,
		"reconciliations": len(o.recs),
	}).Error("fatal inconsistency")
	im.met.BumpSum("fatal", 1, "op", o.name)
	im.met.BumpSum("op", 1, "op", o.name, "result", "fatal")

	im.alerter.Alert(ctx.Detach(c), listing.Incident{
		Operation:       o.name,
		Id:              o.id,
		Cause:           cause,
		Reconciliations: o.recs,
	})

	return xerrors.Errorf("%s %s: %v: %w", o.name, o.id, cause, domain.ErrFatalInconsistency)
}
