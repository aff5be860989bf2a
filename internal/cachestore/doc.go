// Package cachestore persists the path -> StatEntry index between indexing
// passes.
//
// The cache is loaded and saved as a single unit: a pass loads the whole
// mapping, mutates it in memory and saves it back at most once. Two
// backends implement the Store interface:
//
//   - FileStore: one gob blob on disk, written atomically via temp file and
//     rename, guarded by an advisory lock file.
//   - SQLiteStore: a single table keyed by path, replaced wholesale inside
//     one transaction.
//
// Any load failure (missing file, corrupt blob, schema mismatch) is
// reported as ErrCacheUnavailable together with an empty mapping; the
// indexer treats that as "no previous cache" and performs a full scan.
package cachestore
