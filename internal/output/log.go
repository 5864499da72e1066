// Package output provides terminal output utilities.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// logger is the process-wide logger. Reconfigured by SetupLogging.
var logger = newLogger(os.Stderr, log.InfoLevel, false, false)

// LogConfig controls logger setup.
type LogConfig struct {
	// Verbose enables debug level, caller reporting and timestamps.
	Verbose bool

	// Timestamps overrides the timestamp default (off). Nil keeps the default.
	// Ignored when Verbose is set.
	Timestamps *bool
}

func newLogger(w io.Writer, level log.Level, timestamps, caller bool) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: timestamps,
		ReportCaller:    caller,
		TimeFormat:      "15:04:05",
	})
}

// SetupLogging configures the logger from cfg.
func SetupLogging(cfg LogConfig) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	timestamps := false
	if cfg.Timestamps != nil {
		timestamps = *cfg.Timestamps
	}
	if cfg.Verbose {
		timestamps = true
	}

	logger = newLogger(os.Stderr, level, timestamps, cfg.Verbose)
}

// SetOutput redirects the logger, keeping its level.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// ModuleLogger returns a child logger whose prefix names the module.
func ModuleLogger(name string) *log.Logger {
	return logger.WithPrefix(StyleDim.Render("m:") + StyleNoun.Render(name))
}

// IsDebug reports whether debug logging is enabled.
func IsDebug() bool {
	return logger.GetLevel() <= log.DebugLevel
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...any) {
	logger.Debug(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...any) {
	logger.Warn(msg, keyvals...)
}
