package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalabs-io/platform-api/internal/store"
	"github.com/datalabs-io/platform-api/internal/testutil"
)

func TestStore_PutGetDelete(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	s := New(client, "items")

	item := store.Item{
		Key:        store.UserKey("u1"),
		GSI1PK:     store.EmailPartition("a@x.com"),
		GSI1SK:     store.EmailPartition("a@x.com"),
		Attributes: map[string]string{"user_type": "User", "status": "active"},
	}
	require.NoError(t, s.Put(ctx, item))

	got, err := s.Get(ctx, store.UserKey("u1"))
	require.NoError(t, err)
	assert.Equal(t, item, got)

	_, err = s.Get(ctx, store.UserKey("missing"))
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Delete(ctx, store.UserKey("u1")))
	_, err = s.Get(ctx, store.UserKey("u1"))
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The index entry goes with the item.
	items, err := s.Query(ctx, store.Query{Index: store.IndexGSI1, Partition: store.EmailPartition("a@x.com")})
	require.NoError(t, err)
	assert.Empty(t, items)

	// Deleting again is not an error.
	require.NoError(t, s.Delete(ctx, store.UserKey("u1")))
}

func TestStore_QueryIndex(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	s := New(client, "items")

	put := func(it store.Item) {
		t.Helper()
		require.NoError(t, s.Put(ctx, it))
	}
	put(store.Item{Key: store.AuthSessionKey("u1", "a2"), GSI1PK: store.UserPartition("u1"), GSI1SK: store.UserPartition("u1"), Attributes: map[string]string{"code": "ZZ99XX11"}})
	put(store.Item{Key: store.AuthSessionKey("u1", "a1"), GSI1PK: store.UserPartition("u1"), GSI1SK: store.UserPartition("u1"), Attributes: map[string]string{"code": "AB12CD34"}})
	put(store.Item{Key: store.TeamMemberKey("core", "u1"), GSI1PK: store.UserPartition("u1"), GSI1SK: "TEAM#core", Attributes: map[string]string{"member_type": "User"}})

	items, err := s.Query(ctx, store.Query{
		Index:     store.IndexGSI1,
		Partition: store.UserPartition("u1"),
		Filter:    store.AuthSessionKeyFilter(),
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "AUTHSESSION#a1", items[0].SK)
	assert.Equal(t, "AUTHSESSION#a2", items[1].SK)

	items, err = s.Query(ctx, store.Query{
		Index:      store.IndexGSI1,
		Partition:  store.UserPartition("u1"),
		SortPrefix: "TEAM#",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "TEAM#core", items[0].GSI1SK)

	_, err = s.Query(ctx, store.Query{Index: "GSI2", Partition: "x"})
	assert.Error(t, err)
}

func TestStore_PutMovesIndexEntry(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	s := New(client, "items")

	item := store.Item{
		Key:    store.UserKey("u1"),
		GSI1PK: store.EmailPartition("old@x.com"),
		GSI1SK: store.EmailPartition("old@x.com"),
	}
	require.NoError(t, s.Put(ctx, item))

	item.GSI1PK = store.EmailPartition("new@x.com")
	item.GSI1SK = store.EmailPartition("new@x.com")
	require.NoError(t, s.Put(ctx, item))

	items, err := s.Query(ctx, store.Query{Index: store.IndexGSI1, Partition: store.EmailPartition("old@x.com")})
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = s.Query(ctx, store.Query{Index: store.IndexGSI1, Partition: store.EmailPartition("new@x.com")})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, store.UserKey("u1"), items[0].Key)
}

func TestStore_ExpiryTreatedAsAbsent(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	// Base on the real clock so EXPIREAT stays in the future; the logical
	// clock is advanced independently.
	now := time.Now()
	s := New(client, "items")
	s.now = func() time.Time { return now }

	item := store.Item{
		Key:       store.SessionKey("u1", "s1"),
		GSI1PK:    store.SessionPartition("s1"),
		GSI1SK:    store.SessionPartition("s1"),
		ExpiresAt: now.Add(time.Hour).Unix(),
	}
	require.NoError(t, s.Put(ctx, item))

	_, err := s.Get(ctx, store.SessionKey("u1", "s1"))
	require.NoError(t, err)

	// Even before EXPIREAT fires server-side, the logical clock hides the
	// item one second past expiry.
	now = now.Add(time.Hour + time.Second)
	_, err = s.Get(ctx, store.SessionKey("u1", "s1"))
	assert.ErrorIs(t, err, store.ErrNotFound)

	items, err := s.Query(ctx, store.Query{Index: store.IndexGSI1, Partition: store.SessionPartition("s1")})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSplitField(t *testing.T) {
	key, ok := splitField("USER#u1" + fieldSep + "SESSION#s1")
	assert.True(t, ok)
	assert.Equal(t, store.Key{PK: "USER#u1", SK: "SESSION#s1"}, key)

	_, ok = splitField("garbage")
	assert.False(t, ok)
}
