package redisclient

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPool(t *testing.T) {
	p := newPool("localhost:6379", "")
	require.Equal(t, 1024, p.MaxActive)
	require.Equal(t, 200, p.MaxIdle)
	require.True(t, p.Wait)

	p = newPool("localhost:6379", "", RedisParam{PoolMultiplier: 8})
	require.Equal(t, runtime.NumCPU()*8, p.MaxActive)
	require.Equal(t, runtime.NumCPU()*2, p.MaxIdle)
}

func TestConnectRedisUnreachable(t *testing.T) {
	// nothing listens on port 1, without Retry the first failed ping is returned
	_, err := ConnectRedis("127.0.0.1:1", "")
	require.Error(t, err)

	_, err = ConnectRedis("redis://127.0.0.1:1/0", "")
	require.Error(t, err)
}
