package cachestore

import "errors"

// ErrCacheUnavailable reports that a previous cache could not be read:
// the backing file is missing, the blob is corrupt, or the schema does not
// match. Callers receive an empty mapping alongside it and are expected to
// fall back to a full scan; it is never a fatal condition.
var ErrCacheUnavailable = errors.New("cache unavailable")

// Store persists the whole path -> StatEntry mapping as one unit. There is
// no per-entry access: an indexing pass loads the mapping once, mutates it
// in memory and saves it back once. Implementations must make Save atomic
// with respect to concurrent readers and guard Load/Save against other
// processes with advisory locking.
type Store interface {
	// Load returns the persisted mapping. When no usable cache exists it
	// returns an empty (non-nil) mapping and ErrCacheUnavailable.
	Load() (Mapping, error)

	// Save replaces the persisted mapping.
	Save(Mapping) error

	// Close releases any resources held by the store.
	Close() error
}
