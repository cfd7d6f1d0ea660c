package registry

import (
	"sync"

	"golang.org/x/xerrors"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain"
)

type asset struct {
	collection domain.Address
	id         domain.TokenId
}

// Memory is a process local asset registry
type Memory struct {
	mu      sync.Mutex
	holders map[asset]domain.Address
	fail    func(collection domain.Address, id domain.TokenId, from, to domain.Address) error
}

func NewMemory() *Memory {
	return &Memory{holders: map[asset]domain.Address{}}
}

// Assign records holder as the owner of an asset, used to seed the registry
func (m *Memory) Assign(collection domain.Address, id domain.TokenId, holder domain.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holders[asset{collection.ToLower(), id}] = holder.ToLower()
}

// FailWhen makes Transfer return the error of fn when it is not nil
func (m *Memory) FailWhen(fn func(collection domain.Address, id domain.TokenId, from, to domain.Address) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fn
}

func (m *Memory) Transfer(c ctx.Ctx, collection domain.Address, id domain.TokenId, from, to domain.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail != nil {
		if err := m.fail(collection, id, from, to); err != nil {
			return err
		}
	}

	key := asset{collection.ToLower(), id}
	if holder, ok := m.holders[key]; !ok || !holder.Equals(from) {
		return xerrors.Errorf("%s/%s from %s: %w", collection, id, from, ErrNotHolder)
	}
	m.holders[key] = to.ToLower()
	return nil
}

func (m *Memory) HolderOf(c ctx.Ctx, collection domain.Address, id domain.TokenId) (domain.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	holder, ok := m.holders[asset{collection.ToLower(), id}]
	if !ok {
		return "", domain.ErrNotFound
	}
	return holder, nil
}
