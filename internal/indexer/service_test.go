package indexer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"filestats/internal/site"
	"filestats/internal/stats"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	root := t.TempDir()
	contentDir := filepath.Join(root, "content")
	if err := os.MkdirAll(filepath.Join(contentDir, "notes"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(contentDir, "notes", "a.txt"), []byte("one two"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	builder := site.NewBuilder(contentDir, "")
	recon := New(newTestStore(t), stats.Options{})
	return NewService(recon, builder, 0), contentDir
}

func TestServiceReindexUpdatesSnapshot(t *testing.T) {
	svc, contentDir := newTestService(t)

	result, err := svc.Reindex(Request{Full: true})
	if err != nil {
		t.Fatalf("Reindex: %v", err)
	}
	if result.Scanned != 1 {
		t.Errorf("Scanned = %d, want 1", result.Scanned)
	}

	snap := svc.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("Snapshot has %d entries, want 1", len(snap))
	}

	path := filepath.Join(contentDir, "notes", "a.txt")
	entry, ok := svc.Entry(path)
	if !ok {
		t.Fatalf("Entry(%s) not found", path)
	}
	if entry.WordCount != 2 {
		t.Errorf("WordCount = %d, want 2", entry.WordCount)
	}
}

func TestServiceSnapshotIsACopy(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Reindex(Request{Full: true}); err != nil {
		t.Fatalf("Reindex: %v", err)
	}

	snap := svc.Snapshot()
	for k := range snap {
		delete(snap, k)
	}
	if len(svc.Snapshot()) != 1 {
		t.Error("Mutating a snapshot affected the service state")
	}
}

func TestServiceRejectsConcurrentPass(t *testing.T) {
	svc, _ := newTestService(t)

	if !svc.tryStartIndexing() {
		t.Fatal("tryStartIndexing should succeed when idle")
	}

	if _, err := svc.Reindex(Request{}); err != ErrIndexInProgress {
		t.Errorf("err = %v, want ErrIndexInProgress", err)
	}

	svc.finishIndexing()

	if _, err := svc.Reindex(Request{}); err != nil {
		t.Errorf("Reindex after finish: %v", err)
	}
}

func TestServiceHealthStatus(t *testing.T) {
	svc, _ := newTestService(t)

	status := svc.GetHealthStatus()
	if status.Ready {
		t.Error("Expected Ready=false before the first pass")
	}

	if _, err := svc.Reindex(Request{Full: true}); err != nil {
		t.Fatalf("Reindex: %v", err)
	}

	status = svc.GetHealthStatus()
	if !status.Ready {
		t.Error("Expected Ready=true after a pass")
	}
	if status.Indexing {
		t.Error("Expected Indexing=false between passes")
	}
	if status.CacheEntries != 1 {
		t.Errorf("CacheEntries = %d, want 1", status.CacheEntries)
	}
	if status.LastIndexed.IsZero() {
		t.Error("LastIndexed should be set")
	}
}

func TestServiceLastIndexTime(t *testing.T) {
	svc, _ := newTestService(t)

	if !svc.LastIndexTime().IsZero() {
		t.Error("LastIndexTime should be zero before any pass")
	}

	before := time.Now()
	if _, err := svc.Reindex(Request{}); err != nil {
		t.Fatalf("Reindex: %v", err)
	}
	if svc.LastIndexTime().Before(before) {
		t.Error("LastIndexTime was not updated")
	}
}

func TestServiceParseRequest(t *testing.T) {
	svc, _ := newTestService(t)

	req, err := svc.ParseRequest(false, "notes", true)
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.Category != "notes" || !req.Sweep {
		t.Errorf("Unexpected request: %+v", req)
	}

	if _, err := svc.ParseRequest(false, "missing", false); err == nil {
		t.Error("Expected error for unknown category")
	}
}
