// Package stdlogger exposes the global zerolog logger through printf style
// methods, for libraries that expect a std logger (gorm's logger.Writer).
package stdlogger

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger writes printf style messages to the global zerolog logger at a
// fixed level.
type Logger struct {
	level zerolog.Level
}

// NewWithLevel creates a Logger writing at level.
func NewWithLevel(level zerolog.Level) *Logger {
	return &Logger{level: level}
}

// Printf implements gorm's logger.Writer.
func (l *Logger) Printf(format string, args ...interface{}) {
	log.WithLevel(l.level).Msgf(strings.TrimSpace(format), args...)
}
