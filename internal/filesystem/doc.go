// Package filesystem wraps stat and read operations with retry logic for
// sites served from NFS mounts.
//
// NFS can return ESTALE (stale file handle) when a file is replaced between
// the directory walk and the stat or read that follows it, which is exactly
// what happens when a site generator rewrites content mid-pass. The wrappers
// here retry ESTALE with exponential backoff and record per-volume metrics;
// all other errors pass through untouched.
//
// Volume labels for metrics come from a VolumeResolver configured at
// startup with the content, static, and state directories.
package filesystem
