// Package logging holds the process-wide logger. The logger is created on
// first access and lives for the lifetime of the process.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	once   sync.Once
)

// GetLogger returns the shared logger, creating it on first use.
func GetLogger() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		logger.SetLevel(logrus.InfoLevel)
	})
	return logger
}

// InitLogger sets the level of the shared logger.
func InitLogger(level logrus.Level) {
	GetLogger().SetLevel(level)
}

// Configure applies a textual log level and an optional log file to the
// shared logger. When file is set, output goes to both stderr and the file;
// the returned Closer releases the file and is never nil.
func Configure(level, file string) (io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nopCloser{}, err
	}
	l := GetLogger()
	l.SetLevel(lvl)

	if file == "" {
		l.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nopCloser{}, fmt.Errorf("error opening log file: %w", err)
	}
	l.SetOutput(io.MultiWriter(os.Stderr, f))
	return f, nil
}

// ParseLevel accepts logrus level names case-insensitively. An empty string
// means info.
func ParseLevel(level string) (logrus.Level, error) {
	if strings.TrimSpace(level) == "" {
		return logrus.InfoLevel, nil
	}
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
