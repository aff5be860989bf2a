package contenttypes

import (
	"os"
	"path/filepath"
	"testing"
)

func TestByExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".txt", "text/plain"},
		{".md", "text/plain"},
		{".html", "text/html"},
		{".htm", "text/html"},
		{".css", "text/css"},
		{".png", "image/png"},
		{".pdf", "application/pdf"},
		{".HTML", "text/html"}, // case-insensitive
		{".xyz", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ByExtension(tt.ext); got != tt.want {
			t.Errorf("ByExtension(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestDetectFileByExtension(t *testing.T) {
	tempDir := t.TempDir()

	path := filepath.Join(tempDir, "entry.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if got := DetectFile(path); got != "text/plain" {
		t.Errorf("DetectFile(%q) = %q, want text/plain", path, got)
	}
}

func TestDetectFileSniffsUnknownExtension(t *testing.T) {
	tempDir := t.TempDir()

	path := filepath.Join(tempDir, "page.unknown")
	if err := os.WriteFile(path, []byte("<!DOCTYPE html><html><body>hi</body></html>"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if got := DetectFile(path); got != "text/html" {
		t.Errorf("DetectFile(%q) = %q, want text/html", path, got)
	}
}

func TestDetectFileMissingFile(t *testing.T) {
	got := DetectFile(filepath.Join(t.TempDir(), "nope.unknown"))
	if got != DefaultMimeType {
		t.Errorf("DetectFile on missing file = %q, want %q", got, DefaultMimeType)
	}
}

func TestBareType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"text/plain; charset=utf-8", "text/plain"},
		{"text/html", "text/html"},
		{" application/json ; q=1", "application/json"},
	}

	for _, tt := range tests {
		if got := bareType(tt.in); got != tt.want {
			t.Errorf("bareType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsText(t *testing.T) {
	tests := []struct {
		mimeType string
		want     bool
	}{
		{"text/plain", true},
		{"text/plain; charset=utf-8", true},
		{"text/html", true},
		{"text/css", false},
		{"image/png", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsText(tt.mimeType); got != tt.want {
			t.Errorf("IsText(%q) = %v, want %v", tt.mimeType, got, tt.want)
		}
	}
}
