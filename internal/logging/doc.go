// Package logging constructs slog loggers for the fitcoach CLI and API
// daemon.
//
// It parses level and format strings from configuration, fans output out to
// stdout and the configured log directory, and provides typed attribute
// helpers plus component loggers so packages emit consistent structured
// fields. A noop logger is available for tests and optional dependencies.
package logging
