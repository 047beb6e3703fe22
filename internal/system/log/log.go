// Package log holds the process-wide logrus logger.
package log

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	mu     sync.RWMutex
)

// Init configures the process logger from the given level and format.
// Unknown levels fall back to info, unknown formats to JSON.
func Init(level, format string, out io.Writer) *logrus.Logger {
	l := logrus.New()
	if out != nil {
		l.SetOutput(out)
	}

	if format == "text" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	l.SetLevel(logrus.InfoLevel)
	if parsed, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(parsed)
	}

	mu.Lock()
	logger = l
	mu.Unlock()
	return l
}

// GetLogger returns the process logger, creating a default one if Init was never called.
func GetLogger() *logrus.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}
	return Init("info", "json", nil)
}

// SetLogger replaces the process logger (for testing purposes)
func SetLogger(l *logrus.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}
