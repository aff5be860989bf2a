// Package workers calculates worker pool sizes based on available CPUs,
// respecting container CPU limits and the STATS_WORKERS override.
package workers
