// Package logging provides structured logging for Incubadora Core.
//
// It wraps log/slog with level filtering, JSON/text output selection, and
// default service attributes so every log line is attributable.
package logging
