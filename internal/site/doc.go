// Package site enumerates the file universe an indexing pass operates on.
//
// Two populations are tracked. Entry files live under the content directory
// and carry a category derived from their directory path ("stories/2024"
// for content/stories/2024/trip.txt). Other files live under the static
// directory; their categories are inferred the same way and directories are
// carried as records so downstream consumers can skip them explicitly.
// Hidden files and directories are excluded from both populations.
package site
