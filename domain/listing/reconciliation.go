package listing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain"
)

type ReconciliationReason string

const (
	ReasonFeeUnpaid      ReconciliationReason = "fee_unpaid"
	ReasonProceedsUnpaid ReconciliationReason = "proceeds_unpaid"
	ReasonRefundUnpaid   ReconciliationReason = "refund_unpaid"

	// custody taken for a listing that was never stored could not be handed back
	ReasonCustodyUnreturned ReconciliationReason = "custody_unreturned"

	// the store did not commit after collaborators moved value, Cause lists the transfers
	ReasonCommitFailed ReconciliationReason = "commit_failed"
)

// Reconciliation is a transfer the marketplace owes but failed to make after an
// irreversible step, kept until an operator settles it
type Reconciliation struct {
	ReconciliationId string               `json:"reconciliationId" bson:"reconciliationId"`
	Operation        string               `json:"operation" bson:"operation"`
	CollectionId     domain.Address       `json:"collectionId" bson:"collectionId"`
	AssetId          domain.TokenId       `json:"assetId" bson:"assetId"`
	Payee            domain.Address       `json:"payee" bson:"payee"`
	Amount           decimal.Decimal      `json:"amount" bson:"amount"`
	Reason           ReconciliationReason `json:"reason" bson:"reason"`
	Cause            string               `json:"cause" bson:"cause"`
	Resolved         bool                 `json:"resolved" bson:"resolved"`
	ResolvedBy       domain.Address       `json:"resolvedBy,omitempty" bson:"resolvedBy,omitempty"`
	CreatedAt        time.Time            `json:"createdAt" bson:"createdAt"`
	ResolvedAt       *time.Time           `json:"resolvedAt,omitempty" bson:"resolvedAt,omitempty"`
}

type ReconciliationPatchable struct {
	Resolved   *bool           `bson:"resolved,omitempty"`
	ResolvedBy *domain.Address `bson:"resolvedBy,omitempty"`
	ResolvedAt *time.Time      `bson:"resolvedAt,omitempty"`
}

type ReconciliationFindAllOptions struct {
	Offset   *int32
	Limit    *int32
	Resolved *bool `bson:"resolved"`
}

type ReconciliationFindAllOptionsFunc func(*ReconciliationFindAllOptions) error

func GetReconciliationFindAllOptions(opts ...ReconciliationFindAllOptionsFunc) (ReconciliationFindAllOptions, error) {
	res := ReconciliationFindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func ReconciliationWithResolved(resolved bool) ReconciliationFindAllOptionsFunc {
	return func(options *ReconciliationFindAllOptions) error {
		options.Resolved = &resolved
		return nil
	}
}

func ReconciliationWithPagination(offset int32, limit int32) ReconciliationFindAllOptionsFunc {
	return func(options *ReconciliationFindAllOptions) error {
		if offset < 0 || limit < 0 {
			return domain.ErrInvalidArgument
		}
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type ReconciliationRepo interface {
	Insert(c ctx.Ctx, r *Reconciliation) error
	FindOne(c ctx.Ctx, id string) (*Reconciliation, error)
	FindAll(c ctx.Ctx, opts ...ReconciliationFindAllOptionsFunc) ([]*Reconciliation, error)
	Update(c ctx.Ctx, id string, patchable ReconciliationPatchable) error
}

type ReconciliationUseCase interface {
	// Record persists open records, call it inside the operation's transaction
	Record(c ctx.Ctx, recs ...*Reconciliation) error
	FindAll(c ctx.Ctx, opts ...ReconciliationFindAllOptionsFunc) ([]*Reconciliation, error)
	// Resolve pays the record again, administrator only
	Resolve(c ctx.Ctx, caller domain.Address, id string) (*Reconciliation, error)
}

// Incident is a fatal inconsistency surfaced to operators
type Incident struct {
	Operation       string
	Id              Id
	Cause           error
	Reconciliations []*Reconciliation
}

// Alerter pushes incidents to an operator channel
type Alerter interface {
	Alert(c ctx.Ctx, incident Incident)
}
