package cachestore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"filestats/internal/logging"
)

// Default timeout for database operations
const defaultTimeout = 5 * time.Second

// SQLiteStore persists the mapping in a SQLite table keyed by path. It is a
// drop-in alternative to FileStore for sites whose tooling already carries a
// SQLite state database. The whole-mapping contract is unchanged: Load reads
// every row, Save replaces every row inside one transaction, and SQLite's
// own file locking stands in for the advisory lock.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (creating if necessary) a SQLite cache database at
// dbPath. The parent directory must already exist and be writable.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	// WAL mode and a busy timeout keep concurrent reader processes from
	// tripping over "database is locked" errors.
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close cache database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to cache database: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}

	if err := s.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close cache database after init failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	logging.Debug("Cache database initialized at %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS file_stats (
		path TEXT PRIMARY KEY,
		size INTEGER NOT NULL DEFAULT 0,
		size_string TEXT NOT NULL DEFAULT '',
		mime_type TEXT NOT NULL DEFAULT '',
		word_count INTEGER NOT NULL DEFAULT 0,
		mtime INTEGER NOT NULL DEFAULT 0
	);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Load reads every cached entry. A query failure degrades to an empty
// mapping plus ErrCacheUnavailable so the caller falls back to a full scan.
func (s *SQLiteStore) Load() (Mapping, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		"SELECT path, size, size_string, mime_type, word_count, mtime FROM file_stats")
	if err != nil {
		return Mapping{}, fmt.Errorf("%w: query: %v", ErrCacheUnavailable, err)
	}
	defer rows.Close()

	mapping := Mapping{}
	for rows.Next() {
		var path string
		var entry StatEntry
		if err := rows.Scan(&path, &entry.Size, &entry.SizeString,
			&entry.MimeType, &entry.WordCount, &entry.MTime); err != nil {
			return Mapping{}, fmt.Errorf("%w: scan: %v", ErrCacheUnavailable, err)
		}
		mapping[path] = entry
	}
	if err := rows.Err(); err != nil {
		return Mapping{}, fmt.Errorf("%w: rows: %v", ErrCacheUnavailable, err)
	}

	return mapping, nil
}

// Save replaces the entire table with the given mapping in one transaction.
func (s *SQLiteStore) Save(mapping Mapping) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}

	if err := s.replaceAll(ctx, tx, mapping); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logging.Error("cache rollback also failed: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cache transaction: %w", err)
	}

	logging.Debug("Saved %d cache entries to %s", len(mapping), s.dbPath)
	return nil
}

func (s *SQLiteStore) replaceAll(ctx context.Context, tx *sql.Tx, mapping Mapping) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM file_stats"); err != nil {
		return fmt.Errorf("failed to clear cache table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO file_stats (path, size, size_string, mime_type, word_count, mtime)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare cache insert: %w", err)
	}
	defer stmt.Close()

	for path, entry := range mapping {
		if _, err := stmt.ExecContext(ctx, path, entry.Size, entry.SizeString,
			entry.MimeType, entry.WordCount, entry.MTime); err != nil {
			return fmt.Errorf("failed to insert cache entry for %s: %w", path, err)
		}
	}

	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
