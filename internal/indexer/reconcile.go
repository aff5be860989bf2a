package indexer

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"filestats/internal/cachestore"
	"filestats/internal/contenttypes"
	"filestats/internal/filesystem"
	"filestats/internal/logging"
	"filestats/internal/metrics"
	"filestats/internal/site"
	"filestats/internal/stats"
	"filestats/internal/workers"
)

// maxScanWorkers caps the pool used for full rebuilds.
const maxScanWorkers = 16

// Mode identifies which reconciliation strategy a pass used.
type Mode string

const (
	// ModeFull discards the previous cache and rescans everything.
	ModeFull Mode = "full"
	// ModeAdditive scans only paths absent from the cache.
	ModeAdditive Mode = "additive"
	// ModeCategory rescans the files of one category subtree.
	ModeCategory Mode = "category"
)

// ErrUnknownCategory reports a category-scoped request naming a category
// that does not exist in the universe.
var ErrUnknownCategory = errors.New("unknown category")

// Request selects the work of one indexing pass. Full takes precedence over
// Category; when neither is set the pass is additive. Sweep removes cache
// entries for files gone from disk and is honored only in the additive
// branch.
type Request struct {
	Full     bool
	Category string
	Sweep    bool
}

// ParseRequest resolves the raw host parameters (reindex_all, reindex_cat,
// delindex) into a Request, validating the category name against the
// universe. The category is kept in normalized form, with leading and
// trailing path separators trimmed.
func ParseRequest(all bool, category string, sweep bool, u site.Universe) (Request, error) {
	req := Request{Full: all, Sweep: sweep}

	if !all && category != "" {
		if !u.HasCategory(category) {
			return Request{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
		}
		req.Category = strings.Trim(category, "/")
	}

	return req, nil
}

// Result summarizes one indexing pass.
type Result struct {
	Mode      Mode `json:"mode,omitempty"`
	Scanned   int  `json:"scanned"`
	Deleted   int  `json:"deleted"`
	Persisted bool `json:"persisted"`
}

// Reconciler decides which files to scan, drop or leave alone given the
// previous cache and the current universe, and persists the outcome at most
// once per pass.
type Reconciler struct {
	store cachestore.Store
	opts  stats.Options
}

// New creates a Reconciler backed by the given store. A nil store disables
// caching entirely: every pass is a full, unpersisted scan.
func New(store cachestore.Store, opts stats.Options) *Reconciler {
	return &Reconciler{
		store: store,
		opts:  opts,
	}
}

// Reindex runs one reconciliation pass and returns the resulting mapping.
//
// The previous cache is loaded once up front. If it cannot be read (missing,
// corrupt, or caching disabled) the pass is forced to full regardless of the
// request. Full and category passes always persist; an additive pass
// persists only when it changed something.
func (r *Reconciler) Reindex(req Request, u site.Universe) (cachestore.Mapping, Result, error) {
	cache, forceFull := r.loadCache()

	var result Result
	dirty := false

	switch {
	case req.Full || forceFull:
		result.Mode = ModeFull
		cache = cachestore.Mapping{}
		result.Scanned = r.scanAll(cache, u)
		dirty = true

	case req.Category != "":
		result.Mode = ModeCategory
		cat := strings.Trim(req.Category, "/")
		for _, rec := range u.Records() {
			if rec.IsDir {
				continue
			}
			// Plain prefix match: "stories" also covers "stories/2024",
			// and (historically) sibling categories sharing the prefix,
			// such as "stories2". Kept for compatibility with existing
			// site layouts that rely on it.
			if rec.Category == cat || strings.HasPrefix(rec.Category, cat) {
				if r.setStats(cache, rec) {
					result.Scanned++
				}
			}
		}
		dirty = true

	default:
		result.Mode = ModeAdditive
		for _, rec := range u.Records() {
			if rec.IsDir {
				continue
			}
			if _, ok := cache[rec.Path]; ok {
				continue
			}
			if r.setStats(cache, rec) {
				result.Scanned++
				dirty = true
			}
		}

		if req.Sweep {
			for path := range cache {
				if isRegularFile(path) {
					continue
				}
				delete(cache, path)
				result.Deleted++
				dirty = true
			}
		}
	}

	if r.store != nil && dirty {
		if err := r.store.Save(cache); err != nil {
			metrics.CacheSavesTotal.WithLabelValues("error").Inc()
			return cache, result, fmt.Errorf("failed to save stats cache: %w", err)
		}
		metrics.CacheSavesTotal.WithLabelValues("ok").Inc()
		result.Persisted = true
	}

	return cache, result, nil
}

// loadCache returns the previous cache, or an empty mapping plus a forced
// full flag when no usable cache exists.
func (r *Reconciler) loadCache() (cachestore.Mapping, bool) {
	if r.store == nil {
		return cachestore.Mapping{}, true
	}

	cache, err := r.store.Load()
	if err != nil {
		metrics.CacheLoadsTotal.WithLabelValues("error").Inc()
		logging.Debug("Stats cache unavailable, forcing full reindex: %v", err)
		return cachestore.Mapping{}, true
	}
	metrics.CacheLoadsTotal.WithLabelValues("ok").Inc()
	if cache == nil {
		cache = cachestore.Mapping{}
	}
	return cache, false
}

// scanAll rebuilds entries for every file in the universe into cache,
// fanning the stat and read work out over a worker pool. Returns the
// number of files scanned.
func (r *Reconciler) scanAll(cache cachestore.Mapping, u site.Universe) int {
	recs := make(chan site.FileRecord)

	var mu sync.Mutex
	var wg sync.WaitGroup
	scanned := 0

	for i := 0; i < workers.ForIO(maxScanWorkers); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rec := range recs {
				entry, ok := r.computeStats(rec)
				if !ok {
					continue
				}
				mu.Lock()
				cache[rec.Path] = entry
				scanned++
				mu.Unlock()
			}
		}()
	}

	for _, rec := range u.Records() {
		if rec.IsDir {
			continue
		}
		recs <- rec
	}
	close(recs)
	wg.Wait()

	return scanned
}

// setStats recomputes the cache entry for one file. A path that no longer
// exists as a regular file has its entry silently removed instead; this is
// how per-file races during a pass degrade to deletion rather than failure.
// Returns true when the file was actually scanned.
func (r *Reconciler) setStats(cache cachestore.Mapping, rec site.FileRecord) bool {
	entry, ok := r.computeStats(rec)
	if !ok {
		delete(cache, rec.Path)
		return false
	}
	cache[rec.Path] = entry
	return true
}

// computeStats builds the entry for one file, or reports false when the
// path is not a regular file anymore.
func (r *Reconciler) computeStats(rec site.FileRecord) (cachestore.StatEntry, bool) {
	info, err := filesystem.Stat(rec.Path, filesystem.DefaultRetryConfig())
	if err != nil || !info.Mode().IsRegular() {
		return cachestore.StatEntry{}, false
	}

	mimeType := contenttypes.DetectFile(rec.Path)

	mtime := rec.MTime
	if mtime == 0 {
		mtime = info.ModTime().Unix()
	}

	return cachestore.StatEntry{
		Size:       info.Size(),
		SizeString: stats.SizeString(info.Size()),
		MimeType:   mimeType,
		WordCount:  stats.WordCount(rec.Path, mimeType, r.opts),
		MTime:      mtime,
	}, true
}

func isRegularFile(path string) bool {
	info, err := filesystem.Stat(path, filesystem.DefaultRetryConfig())
	return err == nil && info.Mode().IsRegular()
}
