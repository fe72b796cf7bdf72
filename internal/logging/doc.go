// Package logging builds the slog loggers used across galley.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for log collection. Loggers write to stdout and, when a log
// directory is configured, to galley.log within it. Attribute helpers keep
// field construction uniform across packages.
package logging
