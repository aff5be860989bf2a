// Package startup handles application configuration and startup logging.
//
// Configuration is layered: built-in defaults, then an optional YAML file
// named by the FILESTATS_CONFIG environment variable, then individual
// environment variables. The package also contains the structured startup
// banner and the section-by-section initialization logs written as the
// server comes up.
package startup
