package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/log"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/fee"
	"github.com/x-xyz/escrow/service/query"
)

const configKey = "fee"

type document struct {
	Key        string `bson:"key"`
	fee.Config `bson:",inline"`
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) fee.Repo {
	return &impl{q}
}

func (im *impl) Get(c ctx.Ctx) (*fee.Config, error) {
	res := document{}
	err := im.q.FindOne(c, domain.TableMarketConfig, bson.M{"key": configKey}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return &res.Config, nil
}

func (im *impl) Set(c ctx.Ctx, cfg *fee.Config) error {
	doc := document{Key: configKey, Config: *cfg}
	if err := im.q.Upsert(c, domain.TableMarketConfig, bson.M{"key": configKey}, doc); err != nil {
		c.WithFields(log.Fields{"err": err, "config": *cfg}).Error("q.Upsert failed")
		return err
	}
	return nil
}
