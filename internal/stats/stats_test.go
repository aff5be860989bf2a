package stats

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSizeString(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0b"},
		{1, "1b"},
		{512, "512b"},
		{1023, "1023b"},
		{1024, "1K"},
		{1025, "1K"},
		{1536, "1K"}, // truncation, not rounding
		{2048, "2K"},
		{1048575, "1023K"},
		{1048576, "1.0M"},
		{1572864, "1.5M"},
		{10485760, "10.0M"},
	}

	for _, tt := range tests {
		if got := SizeString(tt.size); got != tt.want {
			t.Errorf("SizeString(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestWordCountPlainText(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"simple", "hello world", 2},
		{"mixed whitespace", "hello   world\nfoo", 3},
		{"empty", "", 0},
		{"only whitespace", "  \n\t  ", 0},
		{"leading and trailing", "  one two  ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "entry.txt", tt.content)
			if got := WordCount(path, "text/plain", Options{}); got != tt.want {
				t.Errorf("WordCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWordCountPlainTextWithCharset(t *testing.T) {
	path := writeTemp(t, "entry.txt", "one two three")
	if got := WordCount(path, "text/plain; charset=utf-8", Options{}); got != 3 {
		t.Errorf("WordCount with charset parameter = %d, want 3", got)
	}
}

func TestWordCountHTML(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{
			name:    "simple body",
			content: "<html><body>hello <b>world</b></body></html>",
			want:    2,
		},
		{
			name:    "no body tags",
			content: "<p>hello world</p>",
			want:    0,
		},
		{
			name:    "body with attributes",
			content: `<html><BODY class="post">one two three</BODY></html>`,
			want:    3,
		},
		{
			name:    "body across newlines",
			content: "<html>\n<body>\nfirst line\nsecond line\n</body>\n</html>",
			want:    4,
		},
		{
			name:    "head text excluded",
			content: "<html><head><title>ignored title</title></head><body>counted</body></html>",
			want:    1,
		},
		{
			name:    "empty body",
			content: "<html><body></body></html>",
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "page.html", tt.content)
			if got := WordCount(path, "text/html", Options{}); got != tt.want {
				t.Errorf("WordCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWordCountHTMLWholeDocument(t *testing.T) {
	// Legacy mode scans the entire document, so documents without body tags
	// still count.
	path := writeTemp(t, "page.html", "<p>hello world</p>")

	if got := WordCount(path, "text/html", Options{WholeDocument: true}); got != 2 {
		t.Errorf("WordCount whole-document = %d, want 2", got)
	}
}

func TestWordCountNonText(t *testing.T) {
	path := writeTemp(t, "image.png", "not really an image but should not be read")

	if got := WordCount(path, "image/png", Options{}); got != 0 {
		t.Errorf("WordCount for image/png = %d, want 0", got)
	}
	if got := WordCount(path, "application/pdf", Options{}); got != 0 {
		t.Errorf("WordCount for application/pdf = %d, want 0", got)
	}
}

func TestWordCountUnreadableFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.txt")

	if got := WordCount(missing, "text/plain", Options{}); got != 0 {
		t.Errorf("WordCount for missing file = %d, want 0", got)
	}
	if got := WordCount(missing, "text/html", Options{}); got != 0 {
		t.Errorf("WordCount for missing HTML file = %d, want 0", got)
	}
}

func BenchmarkWordCountHTML(b *testing.B) {
	path := filepath.Join(b.TempDir(), "page.html")
	content := "<html><head><title>t</title></head><body>"
	for i := 0; i < 200; i++ {
		content += "<p>some words in a paragraph here</p>\n"
	}
	content += "</body></html>"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		b.Fatalf("WriteFile: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = WordCount(path, "text/html", Options{})
	}
}
