package cachestore

// StatEntry holds the cached statistics for a single content file. Entries
// are keyed by the file's full path; the cache as a whole is a pure derived
// index, reconstructible from disk at any time.
type StatEntry struct {
	Size       int64  `json:"size"`
	SizeString string `json:"sizeString"`
	MimeType   string `json:"mimeType"`
	WordCount  int    `json:"wordCount"`
	MTime      int64  `json:"mtime"`
}

// Mapping is the full path -> StatEntry index, loaded and saved wholesale.
type Mapping map[string]StatEntry

// Clone returns a shallow copy of the mapping. Entries are value types, so
// a shallow copy is a full copy.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
