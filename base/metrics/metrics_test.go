package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTag(t *testing.T) {
	req := require.New(t)
	req.Nil(parseTag(nil))
	req.Equal([]string{"op:buy", "result:ok"}, parseTag([]string{"op", "buy", "result", "ok"}))
}

func TestBumpWithoutAgent(t *testing.T) {
	met := New("listing")
	require.NotPanics(t, func() {
		met.BumpSum("op", 1, "op", "list")
		met.BumpTime("op.time", "op", "list").End()
		// odd tag count is recovered
		met.BumpSum("op", 1, "op")
	})
}

func TestTagsFallBackToEnv(t *testing.T) {
	t.Setenv("ENV_NAME", "staging")
	t.Setenv("APP_NAME", "api")

	met := New("listing", WithoutPodName()).(*Metrics)
	require.Equal(t, []string{"host:", "env:staging", "app:api"}, met.datadog.ddTags)
	require.Equal(t, []string{"host:", "env:staging", "app:api", "op:buy"}, met.datadog.tags([]string{"op", "buy"}))
	require.Equal(t, "listing.op", met.key("op"))
}

func TestFlushWithoutAgent(t *testing.T) {
	New("listing").BumpSum("op", 1)
	require.NotPanics(t, Flush)
}
