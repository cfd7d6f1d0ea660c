// Package memtx is an in-process domain.Transactor. Memory stores record an
// undo step for every write made under a transaction ctx, a failed
// transaction replays them in reverse.
package memtx

import (
	"context"
	"sync"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain"
)

type journalKey struct{}

type journal struct {
	mu   sync.Mutex
	undo []func()
}

func (j *journal) record(undo func()) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.undo = append(j.undo, undo)
}

func (j *journal) rollback() {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

type transactor struct{}

func New() domain.Transactor {
	return &transactor{}
}

// RunWithTransaction joins the outer transaction when c already carries one
func (t *transactor) RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) error {
	if _, ok := c.Value(journalKey{}).(*journal); ok {
		return fn(c)
	}

	j := &journal{}
	tx := ctx.From(context.WithValue(c.Context, journalKey{}, j), c.Logger)
	if err := fn(tx); err != nil {
		j.rollback()
		return err
	}
	return nil
}

// Record registers undo for a write made under c, it is a no-op outside a transaction
func Record(c context.Context, undo func()) {
	if j, ok := c.Value(journalKey{}).(*journal); ok {
		j.record(undo)
	}
}
