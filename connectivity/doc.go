// Package connectivity answers a single question: can the device currently
// reach the remote source?
//
// Checkers are queried fresh on every repository operation: connectivity
// can change between calls, so nothing here caches its answer. A checker
// never returns an error; any inability to determine connectivity is
// reported as "not connected", steering the repository onto the safer,
// cache-only path.
package connectivity
