// Package logging builds the diagnostic logger shared by the store and CLI.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultLevel keeps routine store activity out of the way of command output.
const DefaultLevel = "warn"

// New returns a leveled console logger writing to w.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "tada",
		ReportTimestamp: level <= log.DebugLevel,
		Formatter:       log.TextFormatter,
	})
}

// ParseLevel maps debug|info|warn|error to a log level.
func ParseLevel(level string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "", "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.WarnLevel, fmt.Errorf("invalid log level %q (want debug, info, warn or error)", level)
	}
}
