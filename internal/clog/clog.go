// Package clog is a thin wrapper over the standard log package for
// reporting pipeline stage progress.
package clog

import (
	"io"
	"log"
)

// Logger reports pipeline stage completions to an underlying writer.
type Logger struct {
	l *log.Logger
}

// New builds a Logger writing to w, with no timestamp prefix: stage
// messages are diagnostic chatter, not something a later log aggregator
// needs to correlate by time.
func New(w io.Writer) *Logger {
	return &Logger{l: log.New(w, "mscript: ", 0)}
}

// Stage logs that pipeline stage name completed, with a short formatted
// detail.
func (lg *Logger) Stage(name, format string, args ...any) {
	lg.l.Printf("%s: "+format, append([]any{name}, args...)...)
}
