// Package handlers contains the HTTP handlers for the stats API: reindex
// triggers, read access to the cached mapping, and health endpoints.
package handlers
