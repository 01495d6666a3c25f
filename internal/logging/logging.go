// Package logging builds the zerolog logger. The dashboard owns the
// terminal, so logs go to a file unless stderr is asked for explicitly.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/optimscale/internal/config"

	"github.com/rs/zerolog"
)

// LevelEnv overrides the configured level when set.
const LevelEnv = "OPTIMSCALE_LOG_LEVEL"

// Stderr is the File value that selects standard error.
const Stderr = "-"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger for cfg and the closer of its sink.
func New(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	levelName := cfg.Level
	if env := os.Getenv(LevelEnv); env != "" {
		levelName = env
	}
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("invalid log level: %w", err)
	}

	var (
		out    io.Writer
		closer io.Closer = nopCloser{}
		tty    bool
	)
	switch cfg.File {
	case Stderr:
		out, tty = os.Stderr, true
	default:
		path := cfg.File
		if path == "" {
			path = config.LogPath()
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("creating log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) //nolint:gosec // user-supplied log path
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("could not open log file: %w", err)
		}
		out, closer = f, f
	}

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    !tty,
		}
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}
