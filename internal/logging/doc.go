// Package logging builds the slog loggers used across Lookout.
//
// It provides a compact console handler for interactive use, a JSON handler
// for machine consumption, typed attribute helpers, and the standardized
// field keys shared by every component. Daemon output goes to stdout and a
// log file under the configured log directory.
package logging
