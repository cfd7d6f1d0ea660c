package repository

import (
	"sync"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain/listing"
	"github.com/x-xyz/escrow/service/memtx"
)

type memory struct {
	mu     sync.RWMutex
	events []listing.Event
}

func NewMemory() listing.EventRepo {
	return &memory{}
}

func (m *memory) Insert(c ctx.Ctx, e *listing.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, *e)
	id := e.EventId
	memtx.Record(c, func() { m.drop(id) })
	return nil
}

func (m *memory) drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.events {
		if m.events[i].EventId == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return
		}
	}
}

// FindAll returns the newest events first
func (m *memory) FindAll(c ctx.Ctx, opts ...listing.EventFindAllOptionsFunc) ([]*listing.Event, error) {
	options, err := listing.GetEventFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	res := []*listing.Event{}
	for i := len(m.events) - 1; i >= 0; i-- {
		e := m.events[i]
		switch {
		case options.CollectionId != nil && e.CollectionId != *options.CollectionId:
		case options.AssetId != nil && e.AssetId != *options.AssetId:
		case options.Type != nil && e.Type != *options.Type:
		default:
			res = append(res, &e)
		}
	}

	if options.Offset != nil {
		if int(*options.Offset) >= len(res) {
			return []*listing.Event{}, nil
		}
		res = res[*options.Offset:]
	}
	if options.Limit != nil && *options.Limit > 0 && int(*options.Limit) < len(res) {
		res = res[:*options.Limit]
	}
	return res, nil
}
