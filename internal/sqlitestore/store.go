// Package sqlitestore implements datasource.LocalSource over a SQLite
// database, giving cached entries durability across process restarts. Each
// entity type gets its own table; payloads are msgpack-encoded blobs so the
// schema never changes when models grow fields.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/LazyDev-01/Dayliz-App-sub011/datasource"
)

// Interface assertion to ensure Store implements LocalSource[T].
var _ datasource.LocalSource[any] = (*Store[any])(nil)

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Store is a durable LocalSource backed by one SQLite table. The position
// column preserves the ordering of the last collection refresh so reads give
// back exactly what the remote returned.
type Store[T any] struct {
	db    *sql.DB
	table string
}

// New builds a Store over db for the given table. The table name is
// restricted to identifier characters because it is interpolated into SQL.
func New[T any](db *sql.DB, table string) (*Store[T], error) {
	if db == nil {
		return nil, errors.New("sqlitestore: db must not be nil")
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("sqlitestore: invalid table name %q", table)
	}
	return &Store[T]{db: db, table: table}, nil
}

// Init creates the backing table when it does not exist yet.
func (s *Store[T]) Init(ctx context.Context) error {
	query := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
  scope     TEXT NOT NULL,
  id        TEXT NOT NULL,
  payload   BLOB NOT NULL,
  position  INTEGER NOT NULL DEFAULT 0,
  cached_at INTEGER NOT NULL,
  PRIMARY KEY (scope, id)
)`, s.table)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.table, err)
	}
	return nil
}

// GetAll implements datasource.LocalSource.
func (s *Store[T]) GetAll(ctx context.Context, scope string) ([]datasource.Entry[T], error) {
	query := fmt.Sprintf(`SELECT id, payload, cached_at FROM %s WHERE scope = ? ORDER BY position, id`, s.table)
	rows, err := s.db.QueryContext(ctx, query, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to select cached entries: %w", err)
	}
	defer rows.Close()

	var entries []datasource.Entry[T]
	for rows.Next() {
		var (
			id       string
			payload  []byte
			cachedAt int64
		)
		if err := rows.Scan(&id, &payload, &cachedAt); err != nil {
			return nil, err
		}
		entry, err := decodeEntry[T](id, payload, cachedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetByID implements datasource.LocalSource.
func (s *Store[T]) GetByID(ctx context.Context, scope, id string) (datasource.Entry[T], error) {
	var zero datasource.Entry[T]

	query := fmt.Sprintf(`SELECT payload, cached_at FROM %s WHERE scope = ? AND id = ?`, s.table)
	row := s.db.QueryRowContext(ctx, query, scope, id)

	var (
		payload  []byte
		cachedAt int64
	)
	if err := row.Scan(&payload, &cachedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, fmt.Errorf("entry %s/%s: %w", scope, id, datasource.ErrNotFound)
		}
		return zero, fmt.Errorf("failed to select cached entry: %w", err)
	}
	return decodeEntry[T](id, payload, cachedAt)
}

// Put implements datasource.LocalSource. Existing entries keep their
// position; new entries are appended after the scope's current tail.
func (s *Store[T]) Put(ctx context.Context, scope string, entries ...datasource.Entry[T]) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
INSERT INTO %[1]s (scope, id, payload, position, cached_at)
VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM %[1]s WHERE scope = ?), ?)
ON CONFLICT (scope, id) DO UPDATE SET payload = excluded.payload, cached_at = excluded.cached_at`, s.table)

	for _, entry := range entries {
		payload, err := msgpack.Marshal(entry.Payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload for %s: %w", entry.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, scope, entry.ID, payload, scope, entry.CachedAt.UnixNano()); err != nil {
			return fmt.Errorf("failed to upsert entry %s: %w", entry.ID, err)
		}
	}
	return tx.Commit()
}

// ReplaceAll implements datasource.LocalSource: the scope's contents are
// swapped atomically for the given entries, in order.
func (s *Store[T]) ReplaceAll(ctx context.Context, scope string, entries []datasource.Entry[T]) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE scope = ?`, s.table), scope); err != nil {
		return fmt.Errorf("failed to clear scope %s: %w", scope, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (scope, id, payload, position, cached_at) VALUES (?, ?, ?, ?, ?)`, s.table)
	for i, entry := range entries {
		payload, err := msgpack.Marshal(entry.Payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload for %s: %w", entry.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, scope, entry.ID, payload, i, entry.CachedAt.UnixNano()); err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", entry.ID, err)
		}
	}
	return tx.Commit()
}

// Delete implements datasource.LocalSource. Deleting a missing entry is not
// an error.
func (s *Store[T]) Delete(ctx context.Context, scope, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE scope = ? AND id = ?`, s.table)
	if _, err := s.db.ExecContext(ctx, query, scope, id); err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", id, err)
	}
	return nil
}

func decodeEntry[T any](id string, payload []byte, cachedAt int64) (datasource.Entry[T], error) {
	var value T
	if err := msgpack.Unmarshal(payload, &value); err != nil {
		return datasource.Entry[T]{}, fmt.Errorf("corrupt cached payload for %s: %w", id, err)
	}
	return datasource.Entry[T]{ID: id, Payload: value, CachedAt: time.Unix(0, cachedAt)}, nil
}
