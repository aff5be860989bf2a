package stats

import (
	"fmt"
	"regexp"
	"strings"

	"filestats/internal/filesystem"
)

const (
	kilobyte = 1024
	megabyte = 1024 * 1024
)

// Options controls optional extractor behavior.
type Options struct {
	// WholeDocument counts words across an entire HTML document instead of
	// just the <body> element. Kept for sites whose templates predate body
	// extraction; off by default.
	WholeDocument bool
}

var (
	// bodyRe captures everything between the first <body...> tag and the
	// first </body> tag, case-insensitive, across newlines.
	bodyRe = regexp.MustCompile(`(?is)<body[^>]*>(.*?)</body>`)

	// tagRe matches a single markup tag, across newlines.
	tagRe = regexp.MustCompile(`(?s)<[^>]*>`)
)

// SizeString renders a byte count in the compact human-readable form used
// next to content links: "1.5M", "12K", "734b". Megabytes keep one decimal;
// kilobytes are truncated toward zero, not rounded.
func SizeString(size int64) string {
	switch {
	case size >= megabyte:
		return fmt.Sprintf("%.1fM", float64(size)/megabyte)
	case size >= kilobyte:
		return fmt.Sprintf("%dK", size/kilobyte)
	default:
		return fmt.Sprintf("%db", size)
	}
}

// WordCount returns the number of words in the file at path, given its MIME
// type. Only text/plain and text/html files are read; everything else counts
// as zero words. Unreadable files also count as zero rather than erroring,
// so a permission problem or a racing delete cannot fail an indexing pass.
func WordCount(path, mimeType string, opts Options) int {
	switch {
	case strings.HasPrefix(mimeType, "text/plain"):
		data, err := filesystem.ReadFile(path, filesystem.DefaultRetryConfig())
		if err != nil {
			return 0
		}
		return len(strings.Fields(string(data)))

	case strings.HasPrefix(mimeType, "text/html"):
		data, err := filesystem.ReadFile(path, filesystem.DefaultRetryConfig())
		if err != nil {
			return 0
		}
		return countHTMLWords(string(data), opts)

	default:
		return 0
	}
}

// countHTMLWords counts the words of rendered HTML text. Unless
// opts.WholeDocument is set, only the <body> element is considered; a
// document without body tags counts as zero words.
func countHTMLWords(doc string, opts Options) int {
	if !opts.WholeDocument {
		m := bodyRe.FindStringSubmatch(doc)
		if m == nil {
			return 0
		}
		doc = m[1]
	}

	doc = tagRe.ReplaceAllString(doc, "")
	return len(strings.Fields(doc))
}
