package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 28
)

var level = new(slog.LevelVar)

// LevelFromString parses a level name, falling back to info
func LevelFromString(s string) (l slog.Level, ok bool) {
	switch strings.ToLower(s) {
	case "debug", "dbg":
		return slog.LevelDebug, true
	case "info", "inf":
		return slog.LevelInfo, true
	case "warn", "wrn":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// InitLogger installs a text slog handler writing to a rotating log file as
// the default logger. The returned closer releases the file.
func InitLogger(path, lvl string) (io.Closer, error) {
	if err := SetLevel(lvl); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}

	// slog defaults to logging in the order of time, level, msg, and other attributes.
	handler := slog.NewTextHandler(sink, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	return sink, nil
}

// SetLevel changes the level of the logger installed by InitLogger
func SetLevel(name string) error {
	l, ok := LevelFromString(name)
	if !ok {
		return fmt.Errorf("unknown log level: %q", name)
	}
	level.Set(l)
	return nil
}
