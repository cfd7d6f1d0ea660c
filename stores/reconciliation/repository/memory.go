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
	mu   sync.RWMutex
	recs map[string]listing.Reconciliation
}

func NewMemory() listing.ReconciliationRepo {
	return &memory{recs: map[string]listing.Reconciliation{}}
}

func (m *memory) Insert(c ctx.Ctx, r *listing.Reconciliation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := r.ReconciliationId
	if _, ok := m.recs[id]; ok {
		return domain.ErrConflict
	}
	m.recs[id] = *r
	memtx.Record(c, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.recs, id)
	})
	return nil
}

func (m *memory) FindOne(c ctx.Ctx, id string) (*listing.Reconciliation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.recs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

// FindAll returns the newest records first
func (m *memory) FindAll(c ctx.Ctx, opts ...listing.ReconciliationFindAllOptionsFunc) ([]*listing.Reconciliation, error) {
	options, err := listing.GetReconciliationFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	res := []*listing.Reconciliation{}
	for _, r := range m.recs {
		if options.Resolved != nil && r.Resolved != *options.Resolved {
			continue
		}
		r := r
		res = append(res, &r)
	}
	m.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ReconciliationId < res[j].ReconciliationId
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})

	if options.Offset != nil {
		if int(*options.Offset) >= len(res) {
			return []*listing.Reconciliation{}, nil
		}
		res = res[*options.Offset:]
	}
	if options.Limit != nil && *options.Limit > 0 && int(*options.Limit) < len(res) {
		res = res[:*options.Limit]
	}
	return res, nil
}

func (m *memory) Update(c ctx.Ctx, id string, patchable listing.ReconciliationPatchable) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.recs[id]
	if !ok {
		return domain.ErrNotFound
	}
	prev := r
	if patchable.Resolved != nil {
		r.Resolved = *patchable.Resolved
	}
	if patchable.ResolvedBy != nil {
		r.ResolvedBy = *patchable.ResolvedBy
	}
	if patchable.ResolvedAt != nil {
		t := *patchable.ResolvedAt
		r.ResolvedAt = &t
	}
	m.recs[id] = r
	memtx.Record(c, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.recs[id] = prev
	})
	return nil
}
