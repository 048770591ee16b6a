// Package logging builds the launcher's structured logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Prefix tags every log line.
const Prefix = "launcher"

// New returns a logger writing to w at the named level.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
		Level:  lvl,
	}), nil
}

// Open returns a logger for file if set, appending to it, otherwise for
// fallback. The returned closer releases the file and is never nil.
func Open(file, level string, fallback io.Writer) (*log.Logger, io.Closer, error) {
	if file == "" {
		logger, err := New(fallback, level)
		if err != nil {
			return nil, nil, err
		}
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := New(f, level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	logger.SetReportTimestamp(true)
	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
