// Package store holds the client-side collection caches for the bookstore
// entities.
//
// # Overview
//
// Each entity kind (book, author, publisher, category) gets one Collection
// instance for the lifetime of the process. A Collection is a deterministic
// reduction of dispatched request lifecycles into a view-friendly shape:
//
//	{ items, selected, pagination, loading, err }
//
// Three lifecycles mutate it, each with pending/fulfilled/rejected
// transitions:
//
//   - list fetch: success replaces items and pagination wholesale; failure
//     clears both so an error banner never sits next to stale rows.
//   - get by id: pending eagerly clears the selection; success stores the
//     fetched record; failure leaves the selection cleared.
//   - mutate: create prepends, update replaces in place (selection kept in
//     sync), delete removes (matching selection cleared); failure changes
//     nothing but the error string.
//
// # Concurrency
//
// A sync.RWMutex guards every transition and Snapshot hands out defensive
// copies, so any number of consumers may read while dispatches complete on
// other goroutines. The cache does not fence overlapping dispatches of the
// same intent: if two list fetches race, the later completion overwrites
// the earlier one. Callers wanting stricter ordering serialize their own
// dispatches.
//
// # Lifecycle
//
// Collections are created empty at startup, injected into consumers
// explicitly, and reset only by Reset or process exit. Nothing persists
// across runs.
package store
