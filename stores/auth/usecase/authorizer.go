package usecase

import (
	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain"
)

type adminAuthorizer struct {
	admins map[domain.Address]struct{}
}

// NewAdminAuthorizer answers from a fixed administrator list
func NewAdminAuthorizer(admins []domain.Address) domain.Authorizer {
	m := map[domain.Address]struct{}{}
	for _, a := range admins {
		m[a.ToLower()] = struct{}{}
	}
	return &adminAuthorizer{m}
}

func (im *adminAuthorizer) IsAdministrator(c ctx.Ctx, caller domain.Address) bool {
	_, ok := im.admins[caller.ToLower()]
	return ok
}
