// Package datasource defines the contracts between the offline-first
// repository core and its collaborators: the network-backed system of record
// (RemoteSource), the on-device durable cache (LocalSource), and the failure
// taxonomy both are translated into.
//
// # Overview
//
// Two interfaces drive the whole design:
//
//   - RemoteSource[T]: asynchronous CRUD against the backend. May be
//     unreachable; every operation fails observably.
//   - LocalSource[T]: durable get/put/delete keyed by (scope, id). Survives
//     process restarts, no expiry of its own.
//
// A scope is an opaque token identifying which logical collection an
// operation applies to (a user's cart, all categories). There is at most one
// cached Entry per (scope, id) pair; entries are overwritten whole, never
// merged field by field.
//
// # Fast-path aggregate queries
//
// A remote source that can serve a collection in a single joined round trip
// additionally implements AggregateFetcher[T]. The repository checks for the
// capability with a plain interface assertion; there is no inspection of
// concrete types.
//
// # Failures
//
// Collaborators return ordinary errors. The repository boundary translates
// them into *Failure values carrying a Kind (network, remote, cache, auth,
// validation) so callers can distinguish "no internet, showing cached data"
// from "could not save, try again" without string matching.
package datasource
