package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/escrow/base/ctx"
)

const (
	// Forever sets a key without expiration
	Forever = time.Duration(-1)
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = redis.ErrNil

	// ErrNoPool is returned when no connection pool is configured
	ErrNoPool = errors.New("redis pool not configured")
)

// Service is the redis facade used by the lock, the shared cache and the health check
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error

	// PTTL returns Forever for a key without expiration and ErrNotFound for a missing key
	PTTL(context ctx.Ctx, key string) (time.Duration, error)

	// SetNX sets key only when it is absent, ok is false when the key exists
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) (ok bool, err error)

	// CompareAndDel deletes key only while it still holds val
	CompareAndDel(context ctx.Ctx, key string, val []byte) (bool, error)

	Del(context ctx.Ctx, keys ...string) (int, error)
}
