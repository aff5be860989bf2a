package indexer

import (
	"errors"
	"sync"
	"time"

	"filestats/internal/cachestore"
	"filestats/internal/logging"
	"filestats/internal/metrics"
	"filestats/internal/site"
)

// ErrIndexInProgress reports that a pass is already running. Explicit
// triggers get it back instead of queueing; the caller can retry.
var ErrIndexInProgress = errors.New("indexing already in progress")

// Service runs indexing passes over the site universe: an initial pass at
// startup, periodic passes on a ticker, and on-demand passes triggered over
// HTTP or from the CLI. It also holds the latest mapping in memory for
// read-only consumers.
type Service struct {
	recon    *Reconciler
	builder  *site.Builder
	interval time.Duration
	stopChan chan struct{}

	indexMu         sync.Mutex
	isIndexing      bool
	lastIndexTime   time.Time
	initialComplete bool
	initialError    error
	startTime       time.Time

	snapMu   sync.RWMutex
	snapshot cachestore.Mapping
}

// NewService creates a Service. interval is the period between automatic
// additive passes; zero or negative disables them.
func NewService(recon *Reconciler, builder *site.Builder, interval time.Duration) *Service {
	return &Service{
		recon:     recon,
		builder:   builder,
		interval:  interval,
		stopChan:  make(chan struct{}),
		startTime: time.Now(),
		snapshot:  cachestore.Mapping{},
	}
}

// Start runs the initial pass in the background and starts the periodic
// ticker.
func (s *Service) Start() {
	go func() {
		logging.Info("Starting initial stats pass in background...")
		if _, err := s.Reindex(Request{Sweep: true}); err != nil {
			logging.Error("Initial stats pass error: %v", err)
			s.indexMu.Lock()
			s.initialError = err
			s.indexMu.Unlock()
		}
	}()

	if s.interval > 0 {
		go s.periodicReindex()
	}
}

// Stop stops the periodic ticker.
func (s *Service) Stop() {
	close(s.stopChan)
}

// Reindex builds the current universe and runs one pass. Returns
// ErrIndexInProgress when another pass is already running.
func (s *Service) Reindex(req Request) (Result, error) {
	if !s.tryStartIndexing() {
		return Result{}, ErrIndexInProgress
	}
	defer s.finishIndexing()

	metrics.ReindexIsRunning.Set(1)
	defer metrics.ReindexIsRunning.Set(0)

	start := time.Now()

	universe, err := s.builder.Build()
	if err != nil {
		return Result{}, err
	}

	mapping, result, err := s.recon.Reindex(req, universe)
	if err != nil {
		return result, err
	}

	s.snapMu.Lock()
	s.snapshot = mapping
	s.snapMu.Unlock()

	duration := time.Since(start)
	metrics.ReindexRunsTotal.WithLabelValues(string(result.Mode)).Inc()
	metrics.ReindexDuration.Observe(duration.Seconds())
	metrics.FilesScannedTotal.Add(float64(result.Scanned))
	metrics.EntriesDeletedTotal.Add(float64(result.Deleted))
	metrics.CacheEntries.Set(float64(len(mapping)))

	logging.Info("Stats pass complete: mode=%s scanned=%d deleted=%d entries=%d in %v",
		result.Mode, result.Scanned, result.Deleted, len(mapping), duration)

	return result, nil
}

// ParseRequest resolves raw host parameters against the current universe,
// validating any requested category.
func (s *Service) ParseRequest(all bool, category string, sweep bool) (Request, error) {
	universe, err := s.builder.Build()
	if err != nil {
		return Request{}, err
	}
	return ParseRequest(all, category, sweep, universe)
}

// Snapshot returns a copy of the mapping produced by the last pass.
func (s *Service) Snapshot() cachestore.Mapping {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.snapshot.Clone()
}

// Entry returns the cached entry for one path.
func (s *Service) Entry(path string) (cachestore.StatEntry, bool) {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	entry, ok := s.snapshot[path]
	return entry, ok
}

// IsReady returns whether the initial pass has completed.
func (s *Service) IsReady() bool {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	return s.initialComplete
}

// IsIndexing returns whether a pass is currently running.
func (s *Service) IsIndexing() bool {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	return s.isIndexing
}

// LastIndexTime returns the completion time of the last pass.
func (s *Service) LastIndexTime() time.Time {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	return s.lastIndexTime
}

// HealthStatus contains health check information.
type HealthStatus struct {
	Ready        bool      `json:"ready"`
	Indexing     bool      `json:"indexing"`
	StartTime    time.Time `json:"startTime"`
	Uptime       string    `json:"uptime"`
	LastIndexed  time.Time `json:"lastIndexed,omitempty"`
	InitialError string    `json:"initialError,omitempty"`
	CacheEntries int       `json:"cacheEntries"`
}

// GetHealthStatus returns detailed health information.
func (s *Service) GetHealthStatus() HealthStatus {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	status := HealthStatus{
		Ready:        s.initialComplete,
		Indexing:     s.isIndexing,
		StartTime:    s.startTime,
		Uptime:       time.Since(s.startTime).String(),
		LastIndexed:  s.lastIndexTime,
		CacheEntries: len(s.Snapshot()),
	}

	if s.initialError != nil {
		status.InitialError = s.initialError.Error()
	}

	return status
}

func (s *Service) tryStartIndexing() bool {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	if s.isIndexing {
		return false
	}
	s.isIndexing = true
	return true
}

func (s *Service) finishIndexing() {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	s.isIndexing = false
	s.initialComplete = true
	s.lastIndexTime = time.Now()
}

func (s *Service) periodicReindex() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logging.Debug("Periodic stats pass triggered")
			if _, err := s.Reindex(Request{Sweep: true}); err != nil && !errors.Is(err, ErrIndexInProgress) {
				logging.Error("Periodic stats pass failed: %v", err)
			}
		case <-s.stopChan:
			return
		}
	}
}
