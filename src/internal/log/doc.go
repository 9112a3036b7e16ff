// Package log builds the slog loggers used by the cert commands.
//
// Every logger wraps its output handler in a Handler that strips control
// characters from string values. Identifiers and titles come from remote
// metadata and DOI records, and must not be able to move the cursor or
// rewrite earlier lines of a terminal.
package log
