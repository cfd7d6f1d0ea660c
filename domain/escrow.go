package domain

import (
	"github.com/shopspring/decimal"

	"github.com/x-xyz/escrow/base/ctx"
)

// CustodyService is the asset registry. Transfer fails unless from currently holds the asset.
type CustodyService interface {
	Transfer(c ctx.Ctx, collection Address, asset TokenId, from, to Address) error
	HolderOf(c ctx.Ctx, collection Address, asset TokenId) (Address, error)
}

// FundService is the payment rail. Collect escrows the value attached to a call,
// Pay releases escrowed funds to an account.
type FundService interface {
	Collect(c ctx.Ctx, from Address, amount decimal.Decimal) error
	Pay(c ctx.Ctx, to Address, amount decimal.Decimal) error
}

type Authorizer interface {
	IsAdministrator(c ctx.Ctx, caller Address) bool
}

// Transactor runs fn atomically, a returned error rolls back every write made through fn's ctx
type Transactor interface {
	RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) error
}
