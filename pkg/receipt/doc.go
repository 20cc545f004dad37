// Package receipt persists heart receipts: the identifier returned when an
// asset is hearted, needed later to remove the heart.
//
// Receipts are keyed by album and asset shortcut. Three backends are
// available: MemoryStore for tests and short-lived processes, RedisStore for
// receipts shared between processes, and PebbleStore for an on-disk store
// that survives restarts.
package receipt
