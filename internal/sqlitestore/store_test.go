package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LazyDev-01/Dayliz-App-sub011/datasource"
)

type record struct {
	ID   string `msgpack:"id"`
	Name string `msgpack:"name"`
	Qty  int    `msgpack:"qty"`
}

func newTestStore(t *testing.T) *Store[record] {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	store, err := New[record](db, "cache_entries")
	require.NoError(t, err)
	require.NoError(t, store.Init(context.Background()))
	return store
}

func entry(id, name string, qty int) datasource.Entry[record] {
	return datasource.Entry[record]{
		ID:       id,
		Payload:  record{ID: id, Name: name, Qty: qty},
		CachedAt: time.Now().Truncate(time.Millisecond),
	}
}

func TestNewValidatesInputs(t *testing.T) {
	_, err := New[record](nil, "ok")
	assert.Error(t, err)

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = New[record](db, "bad; DROP TABLE users")
	assert.Error(t, err)

	_, err = New[record](db, "cart_items")
	assert.NoError(t, err)
}

func TestPutAndGetByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := entry("a", "apples", 2)
	require.NoError(t, store.Put(ctx, "cart::u1", want))

	got, err := store.GetByID(ctx, "cart::u1", "a")
	require.NoError(t, err)
	assert.Equal(t, want.Payload, got.Payload)
	assert.Equal(t, want.CachedAt.UnixNano(), got.CachedAt.UnixNano())
}

func TestGetByIDNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetByID(context.Background(), "cart::u1", "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, datasource.ErrNotFound))
}

func TestPutUpsertsKeepingPosition(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "cart::u1", entry("a", "apples", 1), entry("b", "bread", 1)))
	require.NoError(t, store.Put(ctx, "cart::u1", entry("a", "apples", 5)))

	entries, err := store.GetAll(ctx, "cart::u1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].ID, "updated entry must keep its original position")
	assert.Equal(t, 5, entries[0].Payload.Qty)
	assert.Equal(t, "b", entries[1].ID)
}

func TestGetAllIsScoped(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "cart::u1", entry("a", "apples", 1)))
	require.NoError(t, store.Put(ctx, "cart::u2", entry("b", "bread", 1)))

	entries, err := store.GetAll(ctx, "cart::u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].ID)
}

func TestReplaceAllMirrorsRemoteOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "cart::u1", entry("old", "stale", 1)))
	require.NoError(t, store.ReplaceAll(ctx, "cart::u1", []datasource.Entry[record]{
		entry("z", "zucchini", 1),
		entry("a", "apples", 2),
	}))

	entries, err := store.GetAll(ctx, "cart::u1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "z", entries[0].ID, "insertion order wins over lexical order")
	assert.Equal(t, "a", entries[1].ID)
}

func TestReplaceAllWithEmptyClearsScope(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "cart::u1", entry("a", "apples", 1)))
	require.NoError(t, store.ReplaceAll(ctx, "cart::u1", nil))

	entries, err := store.GetAll(ctx, "cart::u1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "cart::u1", entry("a", "apples", 1)))
	require.NoError(t, store.Delete(ctx, "cart::u1", "a"))

	_, err := store.GetByID(ctx, "cart::u1", "a")
	assert.True(t, errors.Is(err, datasource.ErrNotFound))

	// Deleting a missing entry is a no-op, not an error.
	assert.NoError(t, store.Delete(ctx, "cart::u1", "a"))
}
