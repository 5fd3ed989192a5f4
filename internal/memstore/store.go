// Package memstore implements datasource.LocalSource in memory on top of a
// sturdyc client. It trades the durability of sqlitestore for zero disk I/O,
// which suits catalog caches (products, categories) that are cheap to
// refetch; the sturdyc TTL doubles as a hard staleness bound.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/LazyDev-01/Dayliz-App-sub011/datasource"
)

// Interface assertion to ensure Store implements LocalSource[T].
var _ datasource.LocalSource[any] = (*Store[any])(nil)

// keySeparator joins scope and id into one cache key. Scope tokens are
// normalized by the repository layer, so the separator cannot collide.
const keySeparator = "::"

// Config holds the sturdyc settings for an in-memory store.
type Config struct {
	// Capacity is the maximum number of entries. Must be greater than 0.
	Capacity int

	// NumShards determines the number of cache shards for concurrent
	// access. Must be greater than 0.
	NumShards int

	// TTL is how long an entry stays retrievable. Must be greater than 0.
	TTL time.Duration

	// EvictionPercentage is what share of entries to evict when the cache
	// hits capacity. Must be between 1 and 100.
	EvictionPercentage int

	// EvictionInterval sets how often expired entries are swept. Zero uses
	// sturdyc's default.
	EvictionInterval time.Duration
}

// DefaultConfig returns settings sized for a catalog cache.
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          64,
		TTL:                24 * time.Hour,
		EvictionPercentage: 10,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// Store is a volatile LocalSource holding typed cache entries.
type Store[T any] struct {
	client *sturdyc.Client[datasource.Entry[T]]
}

// New builds a Store from the configuration.
func New[T any](cfg Config) (*Store[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var options []sturdyc.Option
	if cfg.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}

	client := sturdyc.New[datasource.Entry[T]](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		options...,
	)
	return &Store[T]{client: client}, nil
}

// GetAll implements datasource.LocalSource. Entries come back sorted by id;
// the store does not preserve remote ordering.
func (s *Store[T]) GetAll(ctx context.Context, scope string) ([]datasource.Entry[T], error) {
	prefix := scope + keySeparator
	keys := s.client.ScanKeys()
	sort.Strings(keys)

	var entries []datasource.Entry[T]
	for _, key := range keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if entry, ok := s.client.Get(key); ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// GetByID implements datasource.LocalSource.
func (s *Store[T]) GetByID(ctx context.Context, scope, id string) (datasource.Entry[T], error) {
	entry, ok := s.client.Get(scope + keySeparator + id)
	if !ok {
		return datasource.Entry[T]{}, fmt.Errorf("entry %s/%s: %w", scope, id, datasource.ErrNotFound)
	}
	return entry, nil
}

// Put implements datasource.LocalSource.
func (s *Store[T]) Put(ctx context.Context, scope string, entries ...datasource.Entry[T]) error {
	for _, entry := range entries {
		s.client.Set(scope+keySeparator+entry.ID, entry)
	}
	return nil
}

// ReplaceAll implements datasource.LocalSource.
func (s *Store[T]) ReplaceAll(ctx context.Context, scope string, entries []datasource.Entry[T]) error {
	prefix := scope + keySeparator
	for _, key := range s.client.ScanKeys() {
		if strings.HasPrefix(key, prefix) {
			s.client.Delete(key)
		}
	}
	return s.Put(ctx, scope, entries...)
}

// Delete implements datasource.LocalSource.
func (s *Store[T]) Delete(ctx context.Context, scope, id string) error {
	s.client.Delete(scope + keySeparator + id)
	return nil
}
