package locker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/listing"
	"github.com/x-xyz/escrow/service/redis"
)

var (
	mockCtx = ctx.Background()
	idA     = listing.Id{CollectionId: "0xc", AssetId: "1"}
	idB     = listing.Id{CollectionId: "0xc", AssetId: "2"}
)

// fakeRedis keeps keys in a map, expiry is ignored
type fakeRedis struct {
	mu   sync.Mutex
	vals map[string]string
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{vals: map[string]string{}}
}

func (f *fakeRedis) Get(c ctx.Ctx, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vals[key]
	if !ok {
		return nil, redis.ErrNotFound
	}
	return []byte(v), nil
}

func (f *fakeRedis) Set(c ctx.Ctx, key string, val []byte, expire time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vals[key] = string(val)
	return nil
}

func (f *fakeRedis) PTTL(c ctx.Ctx, key string) (time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.vals[key]; !ok {
		return 0, redis.ErrNotFound
	}
	return redis.Forever, nil
}

func (f *fakeRedis) SetNX(c ctx.Ctx, key string, val []byte, expire time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.vals[key]; ok {
		return false, nil
	}
	f.vals[key] = string(val)
	return true, nil
}

func (f *fakeRedis) CompareAndDel(c ctx.Ctx, key string, val []byte) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.vals[key] != string(val) {
		return false, nil
	}
	delete(f.vals, key)
	return true, nil
}

func (f *fakeRedis) Del(c ctx.Ctx, keys ...string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, k := range keys {
		if _, ok := f.vals[k]; ok {
			delete(f.vals, k)
			n++
		}
	}
	return n, nil
}

func testLocker(t *testing.T, l listing.Locker) {
	unlock, err := l.Lock(mockCtx, idA)
	require.NoError(t, err)

	_, err = l.Lock(mockCtx, idA)
	require.ErrorIs(t, err, domain.ErrOperationInProgress)

	unlockB, err := l.Lock(mockCtx, idB)
	require.NoError(t, err)
	unlockB()

	unlock()
	unlock, err = l.Lock(mockCtx, idA)
	require.NoError(t, err)
	unlock()
}

func TestMemory(t *testing.T) {
	testLocker(t, NewMemory())
}

func TestRedis(t *testing.T) {
	testLocker(t, NewRedis(newFakeRedis(), time.Minute))
}

func TestRedisUnlockKeepsOtherHolder(t *testing.T) {
	r := newFakeRedis()
	l := NewRedis(r, time.Minute)

	unlock, err := l.Lock(mockCtx, idA)
	require.NoError(t, err)

	// simulate expiry followed by another holder taking the key
	for k := range r.vals {
		r.vals[k] = "other"
	}
	unlock()

	_, err = l.Lock(mockCtx, idA)
	require.ErrorIs(t, err, domain.ErrOperationInProgress)
}

func TestRedisError(t *testing.T) {
	r := newFakeRedis()
	r.err = errors.New("conn refused")

	_, err := NewRedis(r, time.Minute).Lock(mockCtx, idA)
	require.Equal(t, r.err, err)
}
