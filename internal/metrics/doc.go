// Package metrics defines the Prometheus metrics exported by the filestats
// service: HTTP request metrics recorded by the middleware, reindex pass
// counters and durations, and cache load/save outcomes.
package metrics
