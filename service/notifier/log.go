package notifier

import (
	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/log"
	"github.com/x-xyz/escrow/domain/listing"
)

type logAlerter struct{}

// NewLogAlerter writes incidents to the error log only, used when no discord bot is configured
func NewLogAlerter() listing.Alerter {
	return logAlerter{}
}

func (logAlerter) Alert(c ctx.Ctx, incident listing.Incident) {
	c.WithFields(log.Fields{
		"err":             incident.Cause,
		"operation":       incident.Operation,
		"listing":         incident.Id.String(),
		"reconciliations": incident.Reconciliations,
	}).Error("fatal inconsistency needs reconciliation")
}

type multiAlerter []listing.Alerter

// Multi alerts every one of alerters in turn
func Multi(alerters ...listing.Alerter) listing.Alerter {
	return multiAlerter(alerters)
}

func (m multiAlerter) Alert(c ctx.Ctx, incident listing.Incident) {
	for _, a := range m {
		a.Alert(c, incident)
	}
}
