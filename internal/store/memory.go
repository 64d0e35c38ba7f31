package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory is an in-memory Store used by unit tests and development seeding.
// It honors expiry on reads the same way the real backends do. Safe for
// concurrent use.
type Memory struct {
	mu    sync.RWMutex
	items map[Key]Item

	// NowFunc supplies the clock for expiry checks. Tests override it to
	// simulate time travel. Defaults to time.Now.
	NowFunc func() time.Time
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		items:   make(map[Key]Item),
		NowFunc: time.Now,
	}
}

func (m *Memory) now() time.Time {
	if m.NowFunc != nil {
		return m.NowFunc()
	}
	return time.Now()
}

// Get returns the item at key, or ErrNotFound when absent or expired.
func (m *Memory) Get(_ context.Context, key Key) (Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, ok := m.items[key]
	if !ok || it.Expired(m.now()) {
		return Item{}, ErrNotFound
	}
	return cloneItem(it), nil
}

// Query scans the GSI1 index for items in the given partition.
func (m *Memory) Query(_ context.Context, q Query) ([]Item, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.now()
	var out []Item
	for _, it := range m.items {
		if it.GSI1PK != q.Partition || it.Expired(now) {
			continue
		}
		if q.SortPrefix != "" && !strings.HasPrefix(it.GSI1SK, q.SortPrefix) {
			continue
		}
		if q.Filter != nil && !q.Filter.Matches(it) {
			continue
		}
		out = append(out, cloneItem(it))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].GSI1SK != out[j].GSI1SK {
			return out[i].GSI1SK < out[j].GSI1SK
		}
		if out[i].PK != out[j].PK {
			return out[i].PK < out[j].PK
		}
		return out[i].SK < out[j].SK
	})
	return out, nil
}

// Put writes the item, replacing any existing item at the same key.
func (m *Memory) Put(_ context.Context, item Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.Key] = cloneItem(item)
	return nil
}

// Delete removes the item at key. Deleting an absent item is not an error.
func (m *Memory) Delete(_ context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// Len returns the number of stored items, including expired ones not yet
// overwritten. Test helper.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func cloneItem(it Item) Item {
	out := it
	if it.Attributes != nil {
		out.Attributes = make(map[string]string, len(it.Attributes))
		for k, v := range it.Attributes {
			out.Attributes[k] = v
		}
	}
	return out
}
