package site

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"filestats/internal/logging"
)

// FileRecord identifies one tracked site file.
type FileRecord struct {
	// Path is the full path on disk.
	Path string
	// Category is the slash-separated category identifier, derived from the
	// file's directory relative to its tree root. Root-level files have an
	// empty category.
	Category string
	// MTime is the file's modification time as a Unix timestamp.
	MTime int64
	// IsDir marks directory records in the "other" population. The indexer
	// never scans these.
	IsDir bool
}

// Universe is the complete set of files an indexing pass considers: entry
// files from the content tree, other files from the static tree, and the
// set of known categories.
type Universe struct {
	Entries    []FileRecord
	Others     []FileRecord
	Categories map[string]bool
}

// Records returns the combined entry and other populations.
func (u Universe) Records() []FileRecord {
	out := make([]FileRecord, 0, len(u.Entries)+len(u.Others))
	out = append(out, u.Entries...)
	out = append(out, u.Others...)
	return out
}

// HasCategory reports whether name (after trimming path separators) is a
// known category.
func (u Universe) HasCategory(name string) bool {
	return u.Categories[strings.Trim(name, "/")]
}

// Builder enumerates the site's file universe from disk.
type Builder struct {
	contentDir string
	staticDir  string
}

// NewBuilder creates a Builder for the given content and static directories.
// staticDir may be empty, in which case the "other" population is empty.
func NewBuilder(contentDir, staticDir string) *Builder {
	return &Builder{
		contentDir: contentDir,
		staticDir:  staticDir,
	}
}

// Build walks both trees and returns the current universe. Hidden files and
// directories (dot-prefixed) are excluded, matching what the site generator
// itself tracks. Unreadable paths are logged and skipped rather than
// failing the walk.
func (b *Builder) Build() (Universe, error) {
	u := Universe{Categories: map[string]bool{}}

	entries, err := b.walk(b.contentDir, false, u.Categories)
	if err != nil {
		return Universe{}, fmt.Errorf("failed to walk content directory: %w", err)
	}
	u.Entries = entries

	if b.staticDir != "" {
		others, err := b.walk(b.staticDir, true, nil)
		if err != nil {
			return Universe{}, fmt.Errorf("failed to walk static directory: %w", err)
		}
		u.Others = others
	}

	return u, nil
}

// walk collects records under root. When includeDirs is set, directories are
// returned as records too (flagged IsDir). When categories is non-nil, every
// directory's relative path is recorded as a category.
func (b *Builder) walk(root string, includeDirs bool, categories map[string]bool) ([]FileRecord, error) {
	var records []FileRecord

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logging.Warn("Error accessing path %s: %v", path, err)
			return nil
		}

		if strings.HasPrefix(info.Name(), ".") && path != root {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		if info.IsDir() {
			if categories != nil {
				categories[filepath.ToSlash(relPath)] = true
			}
			if includeDirs {
				records = append(records, FileRecord{
					Path:     path,
					Category: categoryOf(relPath),
					MTime:    info.ModTime().Unix(),
					IsDir:    true,
				})
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		records = append(records, FileRecord{
			Path:     path,
			Category: categoryOf(relPath),
			MTime:    info.ModTime().Unix(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// categoryOf derives the category identifier from a relative file path.
func categoryOf(relPath string) string {
	dir := filepath.Dir(relPath)
	if dir == "." {
		return ""
	}
	return filepath.ToSlash(dir)
}
