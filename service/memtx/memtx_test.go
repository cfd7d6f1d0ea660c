package memtx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/escrow/base/ctx"
)

func TestRollbackInReverseOrder(t *testing.T) {
	req := require.New(t)
	tx := New()
	state := []string{}

	err := tx.RunWithTransaction(ctx.Background(), func(c ctx.Ctx) error {
		state = append(state, "a")
		Record(c, func() { state = state[:len(state)-1] })
		state = append(state, "b")
		Record(c, func() { state = state[:len(state)-1] })
		return errors.New("boom")
	})

	req.EqualError(err, "boom")
	req.Empty(state)
}

func TestCommitKeepsWrites(t *testing.T) {
	req := require.New(t)
	tx := New()
	state := 0

	req.NoError(tx.RunWithTransaction(ctx.Background(), func(c ctx.Ctx) error {
		state = 1
		Record(c, func() { state = 0 })
		return nil
	}))
	req.Equal(1, state)
}

func TestNestedJoinsOuter(t *testing.T) {
	req := require.New(t)
	tx := New()
	state := 0

	err := tx.RunWithTransaction(ctx.Background(), func(c ctx.Ctx) error {
		req.NoError(tx.RunWithTransaction(c, func(inner ctx.Ctx) error {
			state = 1
			Record(inner, func() { state = 0 })
			return nil
		}))
		return errors.New("outer failed")
	})

	req.Error(err)
	req.Equal(0, state)
}

func TestRecordOutsideTransaction(t *testing.T) {
	require.NotPanics(t, func() {
		Record(ctx.Background(), func() { panic("must not run") })
	})
}
