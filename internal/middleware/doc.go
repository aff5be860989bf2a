// Package middleware provides HTTP middleware for request logging,
// Prometheus metrics collection, and response compression.
package middleware
