// Package logging builds the diagnostic logger. User-facing output never
// goes through it.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// New returns a leveled logger writing to w with the "todo" prefix.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       log.TextFormatter,
		ReportTimestamp: lvl == log.DebugLevel,
		Prefix:          "todo",
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
