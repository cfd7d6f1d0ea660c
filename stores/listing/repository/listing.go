package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/database/mongoclient"
	"github.com/x-xyz/escrow/base/log"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/listing"
	"github.com/x-xyz/escrow/service/query"
)

var indexes = []query.Index{
	{Keys: []string{"collectionId", "assetId"}, Unique: true},
	{Keys: []string{"seller", "-createdAt"}},
	{Keys: []string{"collectionId", "isAuction", "-createdAt"}},
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) listing.Repo {
	return &impl{q}
}

// EnsureIndexes creates the listing indexes, the unique key backs ErrConflict
func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.EnsureIndexes(c, domain.TableListings, indexes...)
}

func makeQuery(opts ...listing.FindAllOptionsFunc) (bson.M, listing.FindAllOptions, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return nil, options, err
	}
	query := bson.M{"isActive": true}

	if options.Seller != nil {
		query["seller"] = *options.Seller
	}

	if options.CollectionId != nil {
		query["collectionId"] = *options.CollectionId
	}

	if options.IsAuction != nil {
		query["isAuction"] = *options.IsAuction
	}

	return query, options, nil
}

func sortFields(options listing.FindAllOptions) []string {
	if options.SortBy == nil {
		return []string{"-createdAt"}
	}
	if options.SortDir != nil && *options.SortDir == domain.SortDirDesc {
		return []string{"-" + *options.SortBy}
	}
	return []string{*options.SortBy}
}

func (im *impl) FindOne(c ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	res := listing.Listing{}
	err = im.q.FindOne(c, domain.TableListings, qry, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "query": qry}).Error("failed to q.FindOne")
		return nil, err
	}

	return &res, nil
}

func (im *impl) FindAll(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	qry, options, err := makeQuery(opts...)
	if err != nil {
		c.WithField("err", err).Error("makeQuery failed")
		return nil, err
	}

	offset, limit := 0, 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	res := []*listing.Listing{}
	if err := im.q.Search(c, domain.TableListings, offset, limit, sortFields(options), qry, &res); err != nil {
		c.WithFields(log.Fields{"err": err, "query": qry}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *impl) Count(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) (int, error) {
	qry, _, err := makeQuery(opts...)
	if err != nil {
		c.WithField("err", err).Error("makeQuery failed")
		return 0, err
	}

	cnt, err := im.q.Count(c, domain.TableListings, qry)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "query": qry}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}

func (im *impl) Insert(c ctx.Ctx, l *listing.Listing) error {
	err := im.q.Insert(c, domain.TableListings, l)
	if errors.Is(err, query.ErrDuplicateKey) {
		return xerrors.Errorf("%s: %w", l.ToId(), domain.ErrConflict)
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "listing": *l}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *impl) Update(c ctx.Ctx, l *listing.Listing) error {
	selector, err := mongoclient.MakeBsonM(l.ToId())
	if err != nil {
		c.WithFields(log.Fields{"err": err, "id": l.ToId()}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Replace(c, domain.TableListings, selector, l)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "listing": *l}).Error("failed to q.Replace")
		return err
	}
	return nil
}

func (im *impl) Remove(c ctx.Ctx, id listing.Id) error {
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Remove(c, domain.TableListings, selector)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "selector": selector}).Error("failed to q.Remove")
		return err
	}
	return nil
}
