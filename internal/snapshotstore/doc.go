// Package snapshotstore keeps the most recently accepted configuration
// snapshot in memory.
//
// # Purpose
//
// A configuration snapshot is immutable once it is resolved. When the
// configuration changes, the whole snapshot is replaced by a newly resolved
// one; a snapshot that fails to load or resolve is never published, so readers
// keep seeing the last good tree.
//
// # Concurrency Model
//
// The store holds a single atomic pointer. Publish swaps it, Current loads
// it. Readers never block writers and never observe a partially replaced
// snapshot.
package snapshotstore
