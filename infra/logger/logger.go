package logger

import corelogger "github.com/kilianp07/platalloc/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger = corelogger.Nop

// New returns a Logger for the given component using the process-wide
// settings from Configure. The output format follows APP_ENV.
func New(component string) Logger {
	return NewZerologLogger(component)
}
