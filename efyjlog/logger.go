package efyjlog

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Sink selects where a Logger's output goes.
type Sink int

const (
	// Console writes to os.Stdout.
	Console Sink = iota
	// File writes to a path, created if absent, appended if present.
	File
	// Null discards everything (io.Discard).
	Null
)

// Config selects a Logger's sink, destination path (for Sink == File),
// and level.
type Config struct {
	Sink  Sink
	Path  string
	Level logrus.Level
}

// New builds a *logrus.Logger per cfg. File sinks open (or create) Path
// in append mode; Null discards all output regardless of Level.
func New(cfg Config) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetLevel(cfg.Level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	var out io.Writer
	switch cfg.Sink {
	case Console:
		out = os.Stdout
	case File:
		f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("efyjlog: open %s: %w", cfg.Path, err)
		}
		out = f
	case Null:
		out = io.Discard
	default:
		return nil, fmt.Errorf("efyjlog: unknown sink %d", cfg.Sink)
	}
	log.SetOutput(out)

	return log, nil
}

// WorkerPath returns the per-worker log file path for the parallel
// coordinator's goroutine id ("workers receive their own
// context; logger sink worker-<id>.log").
func WorkerPath(dir string, id int) string {
	return fmt.Sprintf("%s/worker-%d.log", dir, id)
}
