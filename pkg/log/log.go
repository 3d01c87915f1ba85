// Package log provides the leveled logger used throughout the emulator.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the interface components log through. A *logrus.Logger
// satisfies it.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// New returns a Logger writing to stderr at the info level.
func New() Logger {
	return NewWithLevel(os.Stderr, logrus.InfoLevel)
}

// NewWithLevel returns a Logger writing to w, discarding entries
// below level.
func NewWithLevel(w io.Writer, level logrus.Level) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}

// ParseLevel converts a level name ("debug", "info", ...) into
// a logrus.Level.
func ParseLevel(level string) (logrus.Level, error) {
	return logrus.ParseLevel(level)
}
