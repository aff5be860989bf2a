package cachestore

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"filestats/internal/logging"
)

// DefaultCacheFileName is the cache file created under the state directory
// when no explicit cache path is configured.
const DefaultCacheFileName = "file_stats.dat"

// schemaVersion is written into the blob header. A mismatch on load is
// treated the same as a corrupt blob: empty cache, full rescan.
const schemaVersion = "1"

// fileHeader precedes the mapping in the serialized blob.
type fileHeader struct {
	SchemaVersion string
}

// FileStore persists the mapping as a single gob blob on disk. Writes go
// through a temp file in the same directory followed by a rename, so readers
// never observe a partially written cache. An advisory lock file guards
// against concurrent external processes running a pass at the same time.
type FileStore struct {
	path string
	lock *flock.Flock
}

// NewFileStore creates a FileStore for the given cache file path. The
// parent directory must exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the cache file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the persisted mapping. Any failure short of acquiring the lock
// degrades to an empty mapping plus ErrCacheUnavailable.
func (s *FileStore) Load() (Mapping, error) {
	if err := s.lock.RLock(); err != nil {
		return Mapping{}, fmt.Errorf("%w: lock %s: %v", ErrCacheUnavailable, s.lock.Path(), err)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			logging.Warn("failed to release cache lock %s: %v", s.lock.Path(), err)
		}
	}()

	f, err := os.Open(s.path)
	if err != nil {
		return Mapping{}, fmt.Errorf("%w: open %s: %v", ErrCacheUnavailable, s.path, err)
	}
	defer f.Close()

	dec := gob.NewDecoder(f)

	var header fileHeader
	if err := dec.Decode(&header); err != nil {
		return Mapping{}, fmt.Errorf("%w: decode header: %v", ErrCacheUnavailable, err)
	}
	if header.SchemaVersion != schemaVersion {
		return Mapping{}, fmt.Errorf("%w: schema version %q, want %q",
			ErrCacheUnavailable, header.SchemaVersion, schemaVersion)
	}

	var mapping Mapping
	if err := dec.Decode(&mapping); err != nil {
		return Mapping{}, fmt.Errorf("%w: decode mapping: %v", ErrCacheUnavailable, err)
	}
	if mapping == nil {
		mapping = Mapping{}
	}

	return mapping, nil
}

// Save atomically replaces the persisted mapping.
func (s *FileStore) Save(mapping Mapping) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock cache file %s: %w", s.lock.Path(), err)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			logging.Warn("failed to release cache lock %s: %v", s.lock.Path(), err)
		}
	}()

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	enc := gob.NewEncoder(tmp)
	if err := enc.Encode(fileHeader{SchemaVersion: schemaVersion}); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to encode cache header: %w", err)
	}
	if err := enc.Encode(mapping); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to encode cache mapping: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	logging.Debug("Saved %d cache entries to %s", len(mapping), s.path)
	return nil
}

// Close releases the store. The advisory lock is acquired per operation, so
// there is nothing to tear down beyond the lock file handle.
func (s *FileStore) Close() error {
	return nil
}
