package repository

import (
	"sort"
	"sync"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/listing"
	"github.com/x-xyz/escrow/service/memtx"
)

type memory struct {
	mu       sync.RWMutex
	listings map[listing.Id]listing.Listing
}

// NewMemory returns a process local store, writes made under a memtx
// transaction are undone when it fails
func NewMemory() listing.Repo {
	return &memory{listings: map[listing.Id]listing.Listing{}}
}

func (m *memory) FindOne(c ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.listings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

func (m *memory) find(opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, listing.FindAllOptions, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return nil, options, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	res := []*listing.Listing{}
	for _, l := range m.listings {
		switch {
		case !l.IsActive:
		case options.Seller != nil && l.Seller != *options.Seller:
		case options.CollectionId != nil && l.CollectionId != *options.CollectionId:
		case options.IsAuction != nil && l.IsAuction != *options.IsAuction:
		default:
			l := l
			res = append(res, &l)
		}
	}
	return res, options, nil
}

func (m *memory) FindAll(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	res, options, err := m.find(opts...)
	if err != nil {
		return nil, err
	}

	// newest first, the key breaks ties
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ToId().String() < res[j].ToId().String()
	})

	if options.Offset != nil {
		if int(*options.Offset) >= len(res) {
			return []*listing.Listing{}, nil
		}
		res = res[*options.Offset:]
	}
	if options.Limit != nil && *options.Limit > 0 && int(*options.Limit) < len(res) {
		res = res[:*options.Limit]
	}
	return res, nil
}

func (m *memory) Count(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) (int, error) {
	res, _, err := m.find(opts...)
	if err != nil {
		return 0, err
	}
	return len(res), nil
}

func (m *memory) Insert(c ctx.Ctx, l *listing.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := l.ToId()
	if _, ok := m.listings[id]; ok {
		return domain.ErrConflict
	}
	m.listings[id] = *l
	memtx.Record(c, func() { m.restore(id, nil) })
	return nil
}

func (m *memory) Update(c ctx.Ctx, l *listing.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := l.ToId()
	prev, ok := m.listings[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.listings[id] = *l
	memtx.Record(c, func() { m.restore(id, &prev) })
	return nil
}

func (m *memory) Remove(c ctx.Ctx, id listing.Id) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, ok := m.listings[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(m.listings, id)
	memtx.Record(c, func() { m.restore(id, &prev) })
	return nil
}

func (m *memory) restore(id listing.Id, prev *listing.Listing) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev == nil {
		delete(m.listings, id)
		return
	}
	m.listings[id] = *prev
}
