// Package logger configures the structured logger shared by the application.
// Records are written as JSON to a size-rotated file so that they never
// interfere with the terminal dashboard.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/timetrackerpro/timetracker/internal/osutil"
)

const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 28
)

// Options controls where and how much is logged.
type Options struct {
	Path  string
	Debug bool
}

// New returns a JSON logger writing to a rotating file at opts.Path. The
// returned closer releases the file handle.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	err := os.MkdirAll(filepath.Dir(opts.Path), osutil.DirPermission)
	if err != nil {
		return nil, nil, err
	}

	w := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	l := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))

	return l, w, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
