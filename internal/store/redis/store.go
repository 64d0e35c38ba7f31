package redis

// Package redis implements the keyed store on Redis. Items are JSON values
// under per-item keys with native EXPIREAT handling physical expiry. The
// GSI1 index is a hash per partition value; entries orphaned by key expiry
// are removed lazily during Query.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/datalabs-io/platform-api/internal/errors"
	"github.com/datalabs-io/platform-api/internal/store"
)

// fieldSep joins pk and sk into one index hash field. Unit separator never
// appears in key components.
const fieldSep = "\x1f"

// Store is a Redis-backed keyed store.
type Store struct {
	client redis.UniversalClient
	table  string
	now    func() time.Time
}

var _ store.Store = (*Store)(nil)

// New creates a Store over the given client, namespacing all keys under the
// table name.
func New(client redis.UniversalClient, table string) *Store {
	if table == "" {
		table = "items"
	}
	return &Store{
		client: client,
		table:  table,
		now:    time.Now,
	}
}

// record is the JSON shape of a stored item.
type record struct {
	PK         string            `json:"pk"`
	SK         string            `json:"sk"`
	GSI1PK     string            `json:"gsi1pk,omitempty"`
	GSI1SK     string            `json:"gsi1sk,omitempty"`
	Attributes map[string]string `json:"attrs,omitempty"`
	ExpiresAt  int64             `json:"expires_at,omitempty"`
}

func (s *Store) itemKey(key store.Key) string {
	return s.table + ":item:" + key.PK + fieldSep + key.SK
}

func (s *Store) indexKey(partition string) string {
	return s.table + ":gsi1:" + partition
}

// Get returns the item at key, or store.ErrNotFound when absent or expired.
func (s *Store) Get(ctx context.Context, key store.Key) (store.Item, error) {
	raw, err := s.client.Get(ctx, s.itemKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return store.Item{}, store.ErrNotFound
	}
	if err != nil {
		return store.Item{}, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "redis get")
	}

	item, err := decodeItem(raw)
	if err != nil {
		return store.Item{}, err
	}
	// EXPIREAT removes expired keys, but check anyway so a skewed Redis
	// clock cannot resurrect an expired item.
	if item.Expired(s.now()) {
		return store.Item{}, store.ErrNotFound
	}
	return item, nil
}

// Query scans the GSI1 index hash for the given partition. Index fields
// whose backing item key has expired are deleted along the way.
func (s *Store) Query(ctx context.Context, q store.Query) ([]store.Item, error) {
	if err := q.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid store query")
	}

	fields, err := s.client.HGetAll(ctx, s.indexKey(q.Partition)).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "redis index scan")
	}

	now := s.now()
	var items []store.Item
	var orphaned []string
	for field, sortValue := range fields {
		if q.SortPrefix != "" && !strings.HasPrefix(sortValue, q.SortPrefix) {
			continue
		}
		key, ok := splitField(field)
		if !ok {
			orphaned = append(orphaned, field)
			continue
		}

		raw, getErr := s.client.Get(ctx, s.itemKey(key)).Result()
		if errors.Is(getErr, redis.Nil) {
			orphaned = append(orphaned, field)
			continue
		}
		if getErr != nil {
			return nil, apperrors.Wrap(getErr, apperrors.ErrCodeUnavailable, "redis get indexed item")
		}

		item, decErr := decodeItem(raw)
		if decErr != nil {
			return nil, decErr
		}
		if item.Expired(now) {
			continue
		}
		if q.Filter != nil && !q.Filter.Matches(item) {
			continue
		}
		items = append(items, item)
	}

	if len(orphaned) > 0 {
		// Best-effort cleanup; a failure just leaves the entry for next time.
		_ = s.client.HDel(ctx, s.indexKey(q.Partition), orphaned...).Err()
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].GSI1SK != items[j].GSI1SK {
			return items[i].GSI1SK < items[j].GSI1SK
		}
		if items[i].PK != items[j].PK {
			return items[i].PK < items[j].PK
		}
		return items[i].SK < items[j].SK
	})
	return items, nil
}

// Put writes the item, replacing any existing item at the same key and
// moving its index entry if the partition value changed.
func (s *Store) Put(ctx context.Context, item store.Item) error {
	raw, err := json.Marshal(record{
		PK:         item.PK,
		SK:         item.SK,
		GSI1PK:     item.GSI1PK,
		GSI1SK:     item.GSI1SK,
		Attributes: item.Attributes,
		ExpiresAt:  item.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	prev, err := s.Get(ctx, item.Key)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	field := item.PK + fieldSep + item.SK
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.itemKey(item.Key), raw, 0)
	if item.ExpiresAt > 0 {
		pipe.ExpireAt(ctx, s.itemKey(item.Key), time.Unix(item.ExpiresAt, 0))
	}
	if prev.GSI1PK != "" && prev.GSI1PK != item.GSI1PK {
		pipe.HDel(ctx, s.indexKey(prev.GSI1PK), field)
	}
	if item.GSI1PK != "" {
		pipe.HSet(ctx, s.indexKey(item.GSI1PK), field, item.GSI1SK)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "redis put")
	}
	return nil
}

// Delete removes the item at key. Deleting an absent item is not an error;
// an index entry orphaned by key expiry is left for Query to clean up.
func (s *Store) Delete(ctx context.Context, key store.Key) error {
	raw, err := s.client.Get(ctx, s.itemKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "redis get before delete")
	}

	item, err := decodeItem(raw)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.itemKey(key))
	if item.GSI1PK != "" {
		pipe.HDel(ctx, s.indexKey(item.GSI1PK), key.PK+fieldSep+key.SK)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "redis delete")
	}
	return nil
}

func decodeItem(raw string) (store.Item, error) {
	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return store.Item{}, fmt.Errorf("unmarshal item: %w", err)
	}
	attrs := rec.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}
	return store.Item{
		Key:        store.Key{PK: rec.PK, SK: rec.SK},
		GSI1PK:     rec.GSI1PK,
		GSI1SK:     rec.GSI1SK,
		Attributes: attrs,
		ExpiresAt:  rec.ExpiresAt,
	}, nil
}

func splitField(field string) (store.Key, bool) {
	pk, sk, ok := strings.Cut(field, fieldSep)
	if !ok || pk == "" || sk == "" {
		return store.Key{}, false
	}
	return store.Key{PK: pk, SK: sk}, true
}
