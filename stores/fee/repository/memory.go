package repository

import (
	"sync"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/fee"
)

type memory struct {
	mu  sync.RWMutex
	cfg *fee.Config
}

func NewMemory() fee.Repo {
	return &memory{}
}

func (m *memory) Get(c ctx.Ctx) (*fee.Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.cfg == nil {
		return nil, domain.ErrNotFound
	}
	cfg := *m.cfg
	return &cfg, nil
}

func (m *memory) Set(c ctx.Ctx, cfg *fee.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := *cfg
	m.cfg = &v
	return nil
}
