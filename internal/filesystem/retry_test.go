package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"
)

func TestVolumeResolver(t *testing.T) {
	vr := NewVolumeResolver(map[string]string{
		"content": "/srv/site/content",
		"static":  "/srv/site/static",
		"state":   "/srv/state",
	})

	tests := []struct {
		path string
		want string
	}{
		{"/srv/site/content/stories/one.txt", "content"},
		{"/srv/site/content", "content"},
		{"/srv/site/static/page.html", "static"},
		{"/srv/state/file_stats.dat", "state"},
		{"/etc/passwd", "unknown"},
	}

	for _, tt := range tests {
		if got := vr.Resolve(tt.path); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestVolumeResolverNil(t *testing.T) {
	var vr *VolumeResolver
	if got := vr.Resolve("/anything"); got != "unknown" {
		t.Errorf("nil resolver Resolve = %q, want unknown", got)
	}
}

func TestVolumeResolverLongestPrefixWins(t *testing.T) {
	vr := NewVolumeResolver(map[string]string{
		"site":    "/srv/site",
		"content": "/srv/site/content",
	})

	if got := vr.Resolve("/srv/site/content/a.txt"); got != "content" {
		t.Errorf("Resolve = %q, want content (most specific prefix)", got)
	}
	if got := vr.Resolve("/srv/site/other.txt"); got != "site" {
		t.Errorf("Resolve = %q, want site", got)
	}
}

func TestIsStaleError(t *testing.T) {
	if isStaleError(nil) {
		t.Error("nil should not be stale")
	}
	if isStaleError(errors.New("plain error")) {
		t.Error("plain error should not be stale")
	}
	if isStaleError(os.ErrNotExist) {
		t.Error("not-exist should not be stale")
	}
	if !isStaleError(syscall.ESTALE) {
		t.Error("ESTALE should be stale")
	}
	wrapped := &os.PathError{Op: "stat", Path: "/x", Err: syscall.ESTALE}
	if !isStaleError(wrapped) {
		t.Error("wrapped ESTALE should be stale")
	}
}

func TestStat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	info, err := Stat(path, DefaultRetryConfig())
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() != 4 {
		t.Errorf("Size = %d, want 4", info.Size())
	}
}

func TestStatNotExistDoesNotRetry(t *testing.T) {
	config := DefaultRetryConfig()
	config.InitialBackoff = time.Second // would be noticeable if retried

	start := time.Now()
	_, err := Stat(filepath.Join(t.TempDir(), "missing"), config)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !os.IsNotExist(err) {
		t.Errorf("err = %v, want not-exist", err)
	}
	if elapsed > 500*time.Millisecond {
		t.Errorf("Stat took %v, non-stale errors must not be retried", elapsed)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := ReadFile(path, DefaultRetryConfig())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello world" {
		t.Errorf("data = %q, want hello world", data)
	}
}

func TestWithRetryRecoversFromStale(t *testing.T) {
	config := RetryConfig{
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
	}

	attempts := 0
	err := withRetry("stat", "/fake", config, func() error {
		attempts++
		if attempts <= 2 {
			return syscall.ESTALE
		}
		return nil
	})

	if err != nil {
		t.Fatalf("withRetry: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestWithRetryGivesUpAfterMaxRetries(t *testing.T) {
	config := RetryConfig{
		MaxRetries:     2,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
	}

	attempts := 0
	err := withRetry("read", "/fake", config, func() error {
		attempts++
		return syscall.ESTALE
	})

	if !errors.Is(err, syscall.ESTALE) {
		t.Errorf("err = %v, want ESTALE", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3 (initial + 2 retries)", attempts)
	}
}
