// Package indexer maintains the per-file statistics cache for the site.
//
// The Reconciler is the core: given the previous cache and the current file
// universe it decides which files to (re)scan, which cache entries to drop,
// and which to leave untouched. Four strategies exist:
//
//   - Full: discard the cache and rescan every file.
//   - Category: rescan the files of one category subtree, touch nothing else.
//   - Additive (default): scan only files not yet in the cache.
//   - Deletion sweep: remove entries for files gone from disk, honored in
//     the additive branch only.
//
// A pass loads the cache once, mutates it in memory, and persists it at
// most once. Per-file failures never abort a pass: a file that vanished or
// cannot be read degrades to a removed entry or a zero word count.
//
// The Service wraps the Reconciler with the runtime concerns: an initial
// pass at startup, periodic passes, serialized on-demand triggers, and an
// in-memory snapshot of the latest mapping for read-only consumers.
package indexer
