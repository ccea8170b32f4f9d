// Package logger defines the logging interface the core packages depend on.
// Core code never picks a backend; infra provides the zerolog implementation.
package logger

// Logger is the leveled logging surface used across the model builder and the
// solve pipeline.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw logs a message with structured fields, used where a solve run
	// attaches its id and status.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
