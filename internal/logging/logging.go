// Package logging builds the session logger. Logs go to a file because the
// terminal belongs to the UI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options configure New.
type Options struct {
	Level       string
	File        string
	Development bool
	// Output overrides File when set.
	Output io.Writer
}

// New returns a JSON logger and a function that closes its output.
// Development sessions log at debug level unless a level is given.
func New(opts Options) (*logrus.Logger, func() error, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := parseLevel(opts.Level, opts.Development)
	if err != nil {
		return nil, nil, err
	}
	logger.SetLevel(level)

	closer := func() error { return nil }
	switch {
	case opts.Output != nil:
		logger.SetOutput(opts.Output)
	case strings.TrimSpace(opts.File) != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(f)
		closer = f.Close
	default:
		logger.SetOutput(io.Discard)
	}
	return logger, closer, nil
}

func parseLevel(level string, development bool) (logrus.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		if development {
			return logrus.DebugLevel, nil
		}
		return logrus.InfoLevel, nil
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("parse log level: %w", err)
	}
	return parsed, nil
}
