// Package contenttypes provides MIME type detection for site content files.
//
// Detection is a two-step process: a fixed extension table covering the
// file populations of a typical static site is consulted first, and files
// with unknown extensions fall back to content sniffing. Files that defeat
// both methods are reported as "text/plain", which matches how blog entry
// files without extensions are authored.
package contenttypes
