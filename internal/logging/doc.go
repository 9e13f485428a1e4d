// Package logging constructs the slog loggers used across mk4 and exposes
// the attribute helpers pipeline stages log with.
package logging
