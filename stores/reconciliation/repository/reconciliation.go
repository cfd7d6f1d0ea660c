package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/log"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/listing"
	"github.com/x-xyz/escrow/service/query"
)

var indexes = []query.Index{
	{Keys: []string{"reconciliationId"}, Unique: true},
	{Keys: []string{"resolved", "-createdAt"}},
	{Keys: []string{"-createdAt"}},
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) listing.ReconciliationRepo {
	return &impl{q}
}

func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.EnsureIndexes(c, domain.TableReconciliations, indexes...)
}

func (im *impl) Insert(c ctx.Ctx, r *listing.Reconciliation) error {
	if err := im.q.Insert(c, domain.TableReconciliations, r); err != nil {
		c.WithFields(log.Fields{"err": err, "reconciliation": *r}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) FindOne(c ctx.Ctx, id string) (*listing.Reconciliation, error) {
	res := &listing.Reconciliation{}
	err := im.q.FindOne(c, domain.TableReconciliations, bson.M{"reconciliationId": id}, res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindAll(c ctx.Ctx, opts ...listing.ReconciliationFindAllOptionsFunc) ([]*listing.Reconciliation, error) {
	options, err := listing.GetReconciliationFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	qry := bson.M{}
	if options.Resolved != nil {
		qry["resolved"] = *options.Resolved
	}

	offset, limit := 0, 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	res := []*listing.Reconciliation{}
	if err := im.q.Search(c, domain.TableReconciliations, offset, limit, []string{"-createdAt"}, qry, &res); err != nil {
		c.WithFields(log.Fields{"err": err, "query": qry}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Update(c ctx.Ctx, id string, patchable listing.ReconciliationPatchable) error {
	err := im.q.Patch(c, domain.TableReconciliations, bson.M{"reconciliationId": id}, patchable)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("q.Patch failed")
		return err
	}
	return nil
}
