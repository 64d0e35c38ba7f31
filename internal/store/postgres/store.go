package postgres

// Package postgres implements the keyed store on a single Postgres table.
// Expiry is logical on reads; physical removal of expired rows is performed
// by the reaper service via ReapExpired.

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/datalabs-io/platform-api/internal/data/pgxutil"
	apperrors "github.com/datalabs-io/platform-api/internal/errors"
	"github.com/datalabs-io/platform-api/internal/store"
)

// Store is a Postgres-backed keyed store.
type Store struct {
	db    *sql.DB
	table string
	now   func() time.Time
}

var _ store.Store = (*Store)(nil)

// New creates a Store over the given pool and table name.
func New(db *sql.DB, table string) *Store {
	if table == "" {
		table = "items"
	}
	return &Store{
		db:    db,
		table: table,
		now:   time.Now,
	}
}

// tableIdent returns the table name quoted as a SQL identifier. The name
// comes from configuration, never from request input.
func (s *Store) tableIdent() string {
	return pgx.Identifier{s.table}.Sanitize()
}

// Get returns the item at key, or store.ErrNotFound when absent or expired.
func (s *Store) Get(ctx context.Context, key store.Key) (store.Item, error) {
	query := fmt.Sprintf(`
		SELECT pk, sk, gsi1pk, gsi1sk, attrs, expires_at
		FROM %s
		WHERE pk = $1 AND sk = $2`, s.tableIdent())

	var item store.Item
	err := pgxutil.WithPgxConn(ctx, s.db, func(conn *pgx.Conn) error {
		row := conn.QueryRow(ctx, query, key.PK, key.SK)
		var scanErr error
		item, scanErr = scanItem(row)
		return scanErr
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return store.Item{}, store.ErrNotFound
	}
	if err != nil {
		return store.Item{}, apperrors.MapDBError(fmt.Errorf("get item: %w", err))
	}

	if item.Expired(s.now()) {
		return store.Item{}, store.ErrNotFound
	}
	return item, nil
}

// Query scans the GSI1 index for items in the given partition, ordered by
// sort value then primary key.
func (s *Store) Query(ctx context.Context, q store.Query) ([]store.Item, error) {
	if err := q.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid store query")
	}

	query := fmt.Sprintf(`
		SELECT pk, sk, gsi1pk, gsi1sk, attrs, expires_at
		FROM %s
		WHERE gsi1pk = $1 AND gsi1sk LIKE $2
		ORDER BY gsi1sk, pk, sk`, s.tableIdent())

	var items []store.Item
	err := pgxutil.WithPgxConn(ctx, s.db, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, query, q.Partition, likePrefix(q.SortPrefix))
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		for rows.Next() {
			item, scanErr := scanItem(rows)
			if scanErr != nil {
				return scanErr
			}
			items = append(items, item)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("query index: %w", err))
	}

	now := s.now()
	out := items[:0]
	for _, item := range items {
		if item.Expired(now) {
			continue
		}
		if q.Filter != nil && !q.Filter.Matches(item) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// Put writes the item, replacing any existing item at the same primary key.
func (s *Store) Put(ctx context.Context, item store.Item) error {
	attrs, err := json.Marshal(attributesOrEmpty(item.Attributes))
	if err != nil {
		return fmt.Errorf("marshal attributes: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (pk, sk, gsi1pk, gsi1sk, attrs, expires_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6)
		ON CONFLICT (pk, sk) DO UPDATE
		SET gsi1pk = EXCLUDED.gsi1pk,
		    gsi1sk = EXCLUDED.gsi1sk,
		    attrs = EXCLUDED.attrs,
		    expires_at = EXCLUDED.expires_at`, s.tableIdent())

	err = pgxutil.WithPgxConn(ctx, s.db, func(conn *pgx.Conn) error {
		_, execErr := conn.Exec(ctx, query, item.PK, item.SK, item.GSI1PK, item.GSI1SK, attrs, item.ExpiresAt)
		return execErr
	})
	if err != nil {
		return apperrors.MapDBError(fmt.Errorf("put item: %w", err))
	}
	return nil
}

// Delete removes the item at key. Deleting an absent item is not an error.
func (s *Store) Delete(ctx context.Context, key store.Key) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE pk = $1 AND sk = $2`, s.tableIdent())

	err := pgxutil.WithPgxConn(ctx, s.db, func(conn *pgx.Conn) error {
		_, execErr := conn.Exec(ctx, query, key.PK, key.SK)
		return execErr
	})
	if err != nil {
		return apperrors.MapDBError(fmt.Errorf("delete item: %w", err))
	}
	return nil
}

// ReapExpired physically deletes up to batchSize items whose expiry has
// passed. Returns the number of rows removed. Reads already treat these
// items as absent, so sweep lag is invisible to callers.
func (s *Store) ReapExpired(ctx context.Context, batchSize int) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE (pk, sk) IN (
			SELECT pk, sk FROM %s
			WHERE expires_at > 0 AND expires_at < $1
			LIMIT $2
		)`, s.tableIdent(), s.tableIdent())

	var deleted int64
	err := pgxutil.WithPgxConn(ctx, s.db, func(conn *pgx.Conn) error {
		tag, execErr := conn.Exec(ctx, query, s.now().Unix(), batchSize)
		if execErr != nil {
			return execErr
		}
		deleted = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, apperrors.MapDBError(fmt.Errorf("reap expired items: %w", err))
	}
	return deleted, nil
}

// rowScanner covers pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (store.Item, error) {
	var (
		item           store.Item
		gsi1pk, gsi1sk sql.NullString
		attrs          []byte
	)
	if err := row.Scan(&item.PK, &item.SK, &gsi1pk, &gsi1sk, &attrs, &item.ExpiresAt); err != nil {
		return store.Item{}, err
	}
	item.GSI1PK = gsi1pk.String
	item.GSI1SK = gsi1sk.String

	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &item.Attributes); err != nil {
			return store.Item{}, fmt.Errorf("unmarshal attributes: %w", err)
		}
	}
	if item.Attributes == nil {
		item.Attributes = map[string]string{}
	}
	return item, nil
}

func attributesOrEmpty(attrs map[string]string) map[string]string {
	if attrs == nil {
		return map[string]string{}
	}
	return attrs
}

// likePrefix escapes LIKE metacharacters so a sort prefix matches literally.
func likePrefix(prefix string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(prefix) + "%"
}
