package locker

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/log"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/keys"
	"github.com/x-xyz/escrow/domain/listing"
	"github.com/x-xyz/escrow/service/redis"
)

type redisLocker struct {
	redis redis.Service
	ttl   time.Duration
}

// NewRedis guards listing keys across instances. ttl bounds how long a crashed
// holder keeps a key, it must outlive the slowest operation.
func NewRedis(r redis.Service, ttl time.Duration) listing.Locker {
	return &redisLocker{redis: r, ttl: ttl}
}

func (im *redisLocker) Lock(c ctx.Ctx, id listing.Id) (func(), error) {
	key := keys.RedisKey(keys.PfxListingLock, id.String())
	token := []byte(uuid.New().String())

	ok, err := im.redis.SetNX(c, key, token, im.ttl)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("redis.SetNX failed")
		return nil, err
	} else if !ok {
		return nil, xerrors.Errorf("%s: %w", id, domain.ErrOperationInProgress)
	}

	return func() {
		// the key may have expired and been taken by another holder
		if ok, err := im.redis.CompareAndDel(ctx.Detach(c), key, token); err != nil {
			c.WithFields(log.Fields{"err": err, "key": key}).Error("redis.CompareAndDel failed")
		} else if !ok {
			c.WithField("key", key).Warn("lock expired before unlock")
		}
	}, nil
}
