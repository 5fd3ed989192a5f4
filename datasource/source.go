package datasource

import (
	"context"
	"time"
)

// Entry is the unit of local caching: the last known-good value for an
// identity within a scope, stamped with when it was committed.
type Entry[T any] struct {
	ID       string    `json:"id" msgpack:"id"`
	Payload  T         `json:"payload" msgpack:"payload"`
	CachedAt time.Time `json:"cached_at" msgpack:"cached_at"`
}

// RemoteSource is the network-reachable system of record for one entity type.
// Implementations perform the canonical CRUD operations; every call either
// returns the authoritative value or fails observably. The repository never
// retries these calls itself; transport-level retries and timeouts belong to
// the implementation.
type RemoteSource[T any] interface {
	// GetAll returns every record in the scope.
	GetAll(ctx context.Context, scope string) ([]T, error)

	// GetByID returns a single record, or an error wrapping ErrNotFound.
	GetByID(ctx context.Context, scope, id string) (T, error)

	// Write creates or updates a record and returns the remote's
	// representation of it, which may carry server-assigned fields.
	Write(ctx context.Context, scope string, record T) (T, error)

	// Delete removes the record from the scope.
	Delete(ctx context.Context, scope, id string) error
}

// AggregateFetcher is the optional fast-path capability: a single round trip
// that serves the whole collection with its related rows already joined.
// Remote sources that support it implement this interface in addition to
// RemoteSource; the repository detects it with an interface assertion.
type AggregateFetcher[T any] interface {
	GetAllAggregate(ctx context.Context, scope string) ([]T, error)
}

// LocalSource is the on-device durable cache for one entity type, keyed by
// (scope, id). Implementations apply last-write-wins semantics and keep at
// most one entry per key. No expiry is required; staleness is the
// repository's concern.
type LocalSource[T any] interface {
	// GetAll returns every cached entry in the scope, in the order they
	// were last replaced when the implementation preserves ordering.
	GetAll(ctx context.Context, scope string) ([]Entry[T], error)

	// GetByID returns one cached entry, or an error wrapping ErrNotFound.
	GetByID(ctx context.Context, scope, id string) (Entry[T], error)

	// Put upserts entries into the scope without touching the others.
	Put(ctx context.Context, scope string, entries ...Entry[T]) error

	// ReplaceAll swaps the scope's entire contents for the given entries,
	// removing anything not in the list. Used after a successful remote
	// collection read so the cache mirrors the remote exactly.
	ReplaceAll(ctx context.Context, scope string, entries []Entry[T]) error

	// Delete removes one entry. Deleting a missing entry is not an error.
	Delete(ctx context.Context, scope, id string) error
}
