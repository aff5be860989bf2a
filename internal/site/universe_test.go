package site

import (
	"os"
	"path/filepath"
	"testing"
)

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func buildTestSite(t *testing.T) (contentDir, staticDir string) {
	t.Helper()
	root := t.TempDir()
	contentDir = filepath.Join(root, "content")
	staticDir = filepath.Join(root, "static")

	mustWrite(t, filepath.Join(contentDir, "welcome.txt"), "hello")
	mustWrite(t, filepath.Join(contentDir, "stories", "one.txt"), "first story")
	mustWrite(t, filepath.Join(contentDir, "stories", "2024", "trip.txt"), "trip report")
	mustWrite(t, filepath.Join(contentDir, ".drafts", "secret.txt"), "hidden")
	mustWrite(t, filepath.Join(staticDir, "logo.png"), "png bytes")
	mustWrite(t, filepath.Join(staticDir, "css", "site.css"), "body {}")
	return contentDir, staticDir
}

func recordByPath(records []FileRecord, path string) (FileRecord, bool) {
	for _, r := range records {
		if r.Path == path {
			return r, true
		}
	}
	return FileRecord{}, false
}

func TestBuildEntries(t *testing.T) {
	contentDir, staticDir := buildTestSite(t)

	u, err := NewBuilder(contentDir, staticDir).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(u.Entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d: %+v", len(u.Entries), u.Entries)
	}

	tests := []struct {
		rel      string
		category string
	}{
		{"welcome.txt", ""},
		{filepath.Join("stories", "one.txt"), "stories"},
		{filepath.Join("stories", "2024", "trip.txt"), "stories/2024"},
	}
	for _, tt := range tests {
		path := filepath.Join(contentDir, tt.rel)
		rec, ok := recordByPath(u.Entries, path)
		if !ok {
			t.Errorf("Entry for %s not found", tt.rel)
			continue
		}
		if rec.Category != tt.category {
			t.Errorf("Category for %s = %q, want %q", tt.rel, rec.Category, tt.category)
		}
		if rec.MTime == 0 {
			t.Errorf("MTime for %s should be set", tt.rel)
		}
		if rec.IsDir {
			t.Errorf("Entry %s should not be a directory record", tt.rel)
		}
	}
}

func TestBuildSkipsHidden(t *testing.T) {
	contentDir, staticDir := buildTestSite(t)

	u, err := NewBuilder(contentDir, staticDir).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for _, rec := range u.Records() {
		if filepath.Base(rec.Path)[0] == '.' {
			t.Errorf("Hidden file included: %s", rec.Path)
		}
	}
	if u.Categories[".drafts"] {
		t.Error("Hidden directory recorded as category")
	}
}

func TestBuildCategories(t *testing.T) {
	contentDir, staticDir := buildTestSite(t)

	u, err := NewBuilder(contentDir, staticDir).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for _, want := range []string{"stories", "stories/2024"} {
		if !u.Categories[want] {
			t.Errorf("Category %q missing, have %v", want, u.Categories)
		}
	}

	if !u.HasCategory("/stories/") {
		t.Error("HasCategory should trim path separators")
	}
	if u.HasCategory("nope") {
		t.Error("HasCategory should be false for unknown category")
	}
}

func TestBuildOthersIncludeDirectories(t *testing.T) {
	contentDir, staticDir := buildTestSite(t)

	u, err := NewBuilder(contentDir, staticDir).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	dirRec, ok := recordByPath(u.Others, filepath.Join(staticDir, "css"))
	if !ok {
		t.Fatal("Directory record for static/css not found")
	}
	if !dirRec.IsDir {
		t.Error("static/css should be flagged IsDir")
	}

	fileRec, ok := recordByPath(u.Others, filepath.Join(staticDir, "css", "site.css"))
	if !ok {
		t.Fatal("Record for static/css/site.css not found")
	}
	if fileRec.IsDir {
		t.Error("site.css should not be flagged IsDir")
	}
	if fileRec.Category != "css" {
		t.Errorf("Category for site.css = %q, want %q", fileRec.Category, "css")
	}
}

func TestBuildWithoutStaticDir(t *testing.T) {
	contentDir, _ := buildTestSite(t)

	u, err := NewBuilder(contentDir, "").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(u.Others) != 0 {
		t.Errorf("Expected no others without a static dir, got %d", len(u.Others))
	}
}

func TestRecordsCombinesPopulations(t *testing.T) {
	contentDir, staticDir := buildTestSite(t)

	u, err := NewBuilder(contentDir, staticDir).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(u.Records()) != len(u.Entries)+len(u.Others) {
		t.Errorf("Records() length = %d, want %d",
			len(u.Records()), len(u.Entries)+len(u.Others))
	}
}
