// Package offlinerepo implements the offline-first repository policy shared
// by every entity type in the app: prefer the remote source of truth, fall
// back to the local cache when the remote fails or the device is offline,
// refresh the cache after successful remote reads, and keep the cache
// consistent after successful remote writes.
//
// # Overview
//
// Repository[T] composes three collaborators from the datasource and
// connectivity packages:
//
//   - a RemoteSource[T] (the backend),
//   - a LocalSource[T] (the durable on-device cache),
//   - a connectivity.Checker (queried fresh on every operation).
//
// The same policy engine is instantiated once per entity type; only the
// scope tokens, id handlers, and the write-mode configuration differ.
//
// # Read policy
//
//  1. Offline: serve the local cache, never touch the remote.
//  2. Online, remote succeeds: refresh the cache and serve the remote value.
//     A cache-write failure is logged and swallowed; it never masks a
//     successful remote read.
//  3. Online, remote fails: degrade silently to cached data. Only when the
//     cache also fails does the caller see an error, and it is the remote's,
//     since that one is more informative. A definitive not-found is not an
//     outage: the cached copy is evicted and the failure surfaces, so a
//     record the remote no longer has cannot be resurrected from cache.
//
// When the remote implements datasource.AggregateFetcher[T], collection
// reads try the single round-trip fast path first and fall back to the
// standard call on failure, before ever consulting the cache: any remote
// truth beats cached truth.
//
// # Write policy
//
// Writes are remote-first and the cache is updated with the remote's
// returned representation, not the caller's input: the remote may assign
// ids, timestamps, or computed fields. What happens when the remote cannot
// be reached depends on the entity class:
//
//   - WriteRemoteOnly (orders, payment methods): the failure surfaces to the
//     caller and the cache is left untouched. Financial state never
//     masquerades as committed.
//   - WriteLocalFallback (cart, wishlist): the write is staged in the local
//     cache and reported with SyncPending so the caller can surface "saved
//     locally, will sync later". Reconcile pushes staged writes to the
//     remote once connectivity returns.
//
// # Concurrency
//
// The repository assumes one logical caller per scope, the way a mobile
// client drives one operation per user action. The pending-write registry
// is safe for concurrent use, but conflicting writes to the same (scope, id)
// get no serialization beyond what the caller provides.
package offlinerepo
