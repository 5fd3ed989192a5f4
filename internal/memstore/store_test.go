package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LazyDev-01/Dayliz-App-sub011/datasource"
)

type product struct {
	ID    string
	Name  string
	Price float64
}

func newTestStore(t *testing.T) *Store[product] {
	t.Helper()
	store, err := New[product](DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return store
}

func productEntry(id, name string) datasource.Entry[product] {
	return datasource.Entry[product]{
		ID:       id,
		Payload:  product{ID: id, Name: name},
		CachedAt: time.Now(),
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"zero capacity", func(c *Config) { c.Capacity = 0 }, "Capacity"},
		{"zero shards", func(c *Config) { c.NumShards = 0 }, "NumShards"},
		{"zero ttl", func(c *Config) { c.TTL = 0 }, "TTL"},
		{"eviction percentage too low", func(c *Config) { c.EvictionPercentage = 0 }, "EvictionPercentage"},
		{"eviction percentage too high", func(c *Config) { c.EvictionPercentage = 101 }, "EvictionPercentage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("expected valid config, got %v", err)
				}
				return
			}
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if cerr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, cerr.Field)
			}
		})
	}
}

func TestPutAndGetByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := productEntry("p1", "milk")
	if err := store.Put(ctx, "products::all", want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.GetByID(ctx, "products::all", "p1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Payload != want.Payload {
		t.Errorf("unexpected payload: %+v", got.Payload)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetByID(context.Background(), "products::all", "missing")
	if !errors.Is(err, datasource.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetAllFiltersByScope(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "products::all", productEntry("p1", "milk"), productEntry("p2", "eggs")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(ctx, "categories::all", productEntry("c1", "dairy")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	entries, err := store.GetAll(ctx, "products::all")
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// memstore sorts by id rather than remote order.
	if entries[0].ID != "p1" || entries[1].ID != "p2" {
		t.Errorf("unexpected ordering: %s, %s", entries[0].ID, entries[1].ID)
	}
}

func TestReplaceAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "products::all", productEntry("stale", "old")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.ReplaceAll(ctx, "products::all", []datasource.Entry[product]{productEntry("p1", "milk")}); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	entries, err := store.GetAll(ctx, "products::all")
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "p1" {
		t.Errorf("unexpected entries: %+v", entries)
	}
	if _, err := store.GetByID(ctx, "products::all", "stale"); !errors.Is(err, datasource.ErrNotFound) {
		t.Errorf("stale entry survived ReplaceAll: %v", err)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "products::all", productEntry("p1", "milk")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Delete(ctx, "products::all", "p1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, "products::all", "p1"); !errors.Is(err, datasource.ErrNotFound) {
		t.Errorf("entry survived delete: %v", err)
	}

	// Deleting a missing entry is a no-op.
	if err := store.Delete(ctx, "products::all", "p1"); err != nil {
		t.Errorf("redundant delete errored: %v", err)
	}
}

func TestTTLExpiresEntries(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TTL = 10 * time.Millisecond
	store, err := New[product](cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, "products::all", productEntry("p1", "milk")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, err := store.GetByID(ctx, "products::all", "p1"); !errors.Is(err, datasource.ErrNotFound) {
		t.Errorf("expired entry still retrievable: %v", err)
	}
}
