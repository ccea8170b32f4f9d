package logger

import corelogger "github.com/gridsteel/steelflex/core/logger"

// Logger aliases the core interface so infra packages take one import.
type Logger = corelogger.Logger

// NopLogger discards everything. Tests and the scenario runner use it to keep
// model construction quiet.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

// New returns the default logger for a component (config, app, solver,
// metrics). Output format follows APP_ENV.
func New(component string) Logger {
	return NewZerologLogger(component)
}
