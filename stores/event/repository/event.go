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
	{Keys: []string{"eventId"}, Unique: true},
	{Keys: []string{"collectionId", "assetId", "-time"}},
	{Keys: []string{"type", "-time"}},
	{Keys: []string{"-time"}},
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) listing.EventRepo {
	return &impl{q}
}

func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.EnsureIndexes(c, domain.TableListingEvents, indexes...)
}

func (im *impl) Insert(c ctx.Ctx, e *listing.Event) error {
	if err := im.q.Insert(c, domain.TableListingEvents, e); err != nil {
		c.WithFields(log.Fields{"err": err, "event": *e}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) FindAll(c ctx.Ctx, opts ...listing.EventFindAllOptionsFunc) ([]*listing.Event, error) {
	options, err := listing.GetEventFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	qry := bson.M{}
	if options.CollectionId != nil {
		qry["collectionId"] = *options.CollectionId
	}
	if options.AssetId != nil {
		qry["assetId"] = *options.AssetId
	}
	if options.Type != nil {
		qry["type"] = *options.Type
	}

	offset, limit := 0, 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	res := []*listing.Event{}
	if err := im.q.Search(c, domain.TableListingEvents, offset, limit, []string{"-time"}, qry, &res); err != nil {
		c.WithFields(log.Fields{"err": err, "query": qry}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}
