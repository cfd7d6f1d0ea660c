package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetPrefix(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"listingLock:0xabc:1", "listingLock:0xabc"},
		{"feeRate:current", "feeRate"},
		{"plain", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, GetPrefix(tt.key), tt.key)
	}
}

func TestRedisKey(t *testing.T) {
	require.Equal(t, "listingLock:0xabc:1", RedisKey(PfxListingLock, "0xabc", "1"))
}
