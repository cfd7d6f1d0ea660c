package locker

import (
	"sync"

	"golang.org/x/xerrors"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/listing"
)

type memory struct {
	mu   sync.Mutex
	held map[listing.Id]struct{}
}

// NewMemory guards listing keys within one process
func NewMemory() listing.Locker {
	return &memory{held: map[listing.Id]struct{}{}}
}

func (m *memory) Lock(c ctx.Ctx, id listing.Id) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.held[id]; ok {
		return nil, xerrors.Errorf("%s: %w", id, domain.ErrOperationInProgress)
	}
	m.held[id] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.held, id)
		})
	}, nil
}
