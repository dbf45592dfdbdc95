package common

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// SetupLogging installs the default slog logger writing to stderr.
func SetupLogging(level string, jsonFormat bool) error {
	logger, err := NewLogger(os.Stderr, level, jsonFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

func NewLogger(w io.Writer, level string, jsonFormat bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if jsonFormat {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
