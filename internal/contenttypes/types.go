package contenttypes

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMimeType is returned when no detection method yields a result.
// Blog entries are plain text unless proven otherwise.
const DefaultMimeType = "text/plain"

// MimeTypes maps file extensions to their MIME types. The table covers the
// file populations of a typical static site: entries, templates, stylesheets,
// scripts, feeds and the usual static assets.
var MimeTypes = map[string]string{
	// Entries and text
	".txt":      "text/plain",
	".text":     "text/plain",
	".md":       "text/plain",
	".markdown": "text/plain",
	".rst":      "text/plain",

	// Markup
	".html":  "text/html",
	".htm":   "text/html",
	".xhtml": "application/xhtml+xml",
	".xml":   "text/xml",
	".rss":   "application/rss+xml",
	".atom":  "application/atom+xml",

	// Site assets
	".css":  "text/css",
	".js":   "text/javascript",
	".json": "application/json",

	// Images
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",

	// Documents
	".pdf": "application/pdf",

	// Archives
	".zip": "application/zip",
	".gz":  "application/gzip",
}

// ByExtension returns the MIME type for a given file extension.
// The extension should include the leading dot (e.g., ".txt"); case is
// ignored. Returns "" if the extension is not in the table.
func ByExtension(ext string) string {
	return MimeTypes[strings.ToLower(ext)]
}

// DetectFile returns the MIME type for a file path. The extension table is
// consulted first; unknown extensions fall back to content sniffing. When
// neither yields anything the result is DefaultMimeType.
//
// The returned value is always in bare type/subtype form, with any
// charset or other parameters stripped.
func DetectFile(path string) string {
	if mt := ByExtension(filepath.Ext(path)); mt != "" {
		return mt
	}

	if detected, err := mimetype.DetectFile(path); err == nil {
		if mt := bareType(detected.String()); mt != "" {
			return mt
		}
	}

	return DefaultMimeType
}

// IsText reports whether a MIME type is one the word counter can read.
func IsText(mimeType string) bool {
	return strings.HasPrefix(mimeType, "text/plain") ||
		strings.HasPrefix(mimeType, "text/html")
}

// bareType strips parameters such as "; charset=utf-8" from a MIME string.
func bareType(mt string) string {
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return strings.TrimSpace(mt)
}
