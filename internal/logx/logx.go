// Package logx configures the passive log every startup failure is reported
// through.
package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// New creates a logger appending to path at the given level. The returned
// closer should be closed when logging is no longer needed.
func New(path, level string) (*logrus.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("ensure logs directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := NewWriter(file, lvl)
	return logger, file, nil
}

// NewWriter creates a logger writing text records to w.
func NewWriter(w io.Writer, level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000000",
	})
	return logger
}

// Discard returns a logger that drops every record.
func Discard() *logrus.Logger {
	return NewWriter(io.Discard, logrus.PanicLevel)
}

// Named returns an entry tagged with the component field.
func Named(logger *logrus.Logger, component string) *logrus.Entry {
	if logger == nil {
		logger = Discard()
	}
	entry := logrus.NewEntry(logger)
	if component != "" {
		entry = entry.WithField("component", component)
	}
	return entry
}

// ParseLevel maps a configuration value to a logrus level. The empty string
// selects info.
func ParseLevel(level string) (logrus.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return logrus.InfoLevel, nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return 0, fmt.Errorf("parse log level: %w", err)
	}
	return lvl, nil
}
