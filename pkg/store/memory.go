package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tableflip.dev/pilot/pkg/collection"
)

// Memory is an in-process Persistence. It keeps records for the life of the
// process and notifies watchers on every change.
type Memory struct {
	mu       sync.Mutex
	records  map[collection.Type]map[string]*Record
	ensured  map[collection.Type]struct{}
	watchers map[chan Event]struct{}
}

var _ Persistence = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		records:  make(map[collection.Type]map[string]*Record),
		ensured:  make(map[collection.Type]struct{}),
		watchers: make(map[chan Event]struct{}),
	}
}

func (m *Memory) ListAll(_ context.Context) []*Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Record, 0)
	for _, items := range m.records {
		for _, r := range items {
			out = append(out, r.clone())
		}
	}
	sortRecords(out)
	return out
}

func (m *Memory) List(_ context.Context, c collection.Type) []*Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.records[c]
	out := make([]*Record, 0, len(items))
	for _, r := range items {
		out = append(out, r.clone())
	}
	sortRecords(out)
	return out
}

func (m *Memory) Get(_ context.Context, c collection.Type, id string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[c][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, c, id)
	}
	return r.clone(), nil
}

func (m *Memory) CollectionsMeta(_ context.Context) []collection.Meta {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]collection.Meta, 0)
	for _, c := range collection.AllTypes() {
		_, ensured := m.ensured[c]
		n := len(m.records[c])
		if !ensured && n == 0 {
			continue
		}
		out = append(out, collection.Meta{Name: c, Count: n})
	}
	return out
}

func (m *Memory) Store(_ context.Context, r *Record) error {
	if r == nil || r.ID == "" {
		return errors.New("store: record id required")
	}
	if _, err := collection.ParseType(string(r.Collection)); err != nil {
		return err
	}
	if r.Schema == "" {
		r.Schema = CurrentSchema
	}
	m.mu.Lock()
	if m.records[r.Collection] == nil {
		m.records[r.Collection] = make(map[string]*Record)
	}
	m.records[r.Collection][r.ID] = r.clone()
	m.mu.Unlock()
	m.notify(Event{Type: EventCollectionChanged, Collection: r.Collection})
	return nil
}

func (m *Memory) Delete(_ context.Context, c collection.Type, id string) error {
	m.mu.Lock()
	if _, ok := m.records[c][id]; !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s/%s", ErrNotFound, c, id)
	}
	delete(m.records[c], id)
	m.mu.Unlock()
	m.notify(Event{Type: EventCollectionChanged, Collection: c})
	return nil
}

func (m *Memory) EnsureCollection(c collection.Type) error {
	if c == "" {
		return errors.New("store: collection name required")
	}
	m.mu.Lock()
	m.ensured[c] = struct{}{}
	m.mu.Unlock()
	m.notify(Event{Type: EventCollectionsInvalidated})
	return nil
}

// Watch streams change events until ctx is cancelled.
func (m *Memory) Watch(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 64)
	m.mu.Lock()
	m.watchers[ch] = struct{}{}
	m.mu.Unlock()
	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.watchers, ch)
		close(ch)
		m.mu.Unlock()
	}()
	return ch, nil
}

func (m *Memory) notify(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for ch := range m.watchers {
		select {
		case ch <- ev:
		default:
		}
	}
}
