// Package lock serializes access to a ledger.
//
// The reconciliation engine assumes exclusive access to a catalog and ledger
// for the duration of one call. When the service runs with several writers,
// the inventory service takes a Locker lock keyed by ledger name around every
// load-reconcile-save cycle.
//
//   - MemoryLocker: process-local, one buffered channel per key.
//   - RedisLocker: SET NX PX with a random token, released by a
//     compare-and-delete Lua script so an expired holder never frees a newer lock.
package lock
