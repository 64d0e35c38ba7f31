package store

// Package store defines the keyed single-table store abstraction. Every item
// carries a primary partition/sort pair; a subset of item kinds additionally
// carries a GSI1 partition/sort pair used only for index queries. All entity
// kinds share one logical table, disambiguated by key prefixes (see keys.go).

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// IndexGSI1 is the name of the single secondary index. It enables reverse
// lookups: user by email, session by session id, teams by member.
const IndexGSI1 = "GSI1"

// ErrNotFound is returned when a Get misses or an item has passed its expiry.
var ErrNotFound = errors.New("item not found")

// Key is the primary partition/sort pair uniquely addressing an item.
type Key struct {
	PK string
	SK string
}

// Item is a single row in the logical table. Attributes hold string-typed
// payload fields; ExpiresAt is epoch seconds, 0 meaning no expiry.
type Item struct {
	Key
	GSI1PK     string
	GSI1SK     string
	Attributes map[string]string
	ExpiresAt  int64
}

// Attribute returns the named attribute value, or "" when absent.
func (it Item) Attribute(name string) string {
	return it.Attributes[name]
}

// Expired reports whether the item has passed its expiry at the given
// instant. Items are valid through their expiry second; the store treats
// expired items as absent on read, while physical removal is left to the
// backend's sweep (best-effort, eventually consistent).
func (it Item) Expired(now time.Time) bool {
	return it.ExpiresAt != 0 && now.Unix() > it.ExpiresAt
}

// KeyFilter is a prefix predicate on an item's primary key components,
// applied after an index scan. Sharing one physical table across record
// kinds means unrelated kinds can collide on an index partition value; the
// filter excludes those false matches.
type KeyFilter struct {
	PKPrefix string
	SKPrefix string
}

// Matches reports whether the item's primary key satisfies the filter.
func (f KeyFilter) Matches(it Item) bool {
	return hasPrefix(it.PK, f.PKPrefix) && hasPrefix(it.SK, f.SKPrefix)
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// Query describes a secondary-index scan: equality on the partition value,
// optional prefix match on the sort value, and an optional key filter.
type Query struct {
	Index      string
	Partition  string
	SortPrefix string
	Filter     *KeyFilter
}

// Validate checks the query shape before it reaches a backend.
func (q Query) Validate() error {
	if q.Index != IndexGSI1 {
		return fmt.Errorf("unknown index %q", q.Index)
	}
	if q.Partition == "" {
		return errors.New("query partition is required")
	}
	return nil
}

// Store is the keyed store contract. All operations hit a remote backend and
// can fail transiently; there is no local caching, so every read re-reads
// the backend. Get and Query treat items past expiry as absent. Put fully
// writes or fully fails (single-item atomicity); Delete is idempotent.
type Store interface {
	Get(ctx context.Context, key Key) (Item, error)
	Query(ctx context.Context, q Query) ([]Item, error)
	Put(ctx context.Context, item Item) error
	Delete(ctx context.Context, key Key) error
}
