package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// defaultLogPath returns korekta.log under the XDG state directory, or under
// the temp dir when stateHome is unset. Stdout belongs to the TUI.
func defaultLogPath(stateHome string) string {
	if stateHome == "" {
		return filepath.Join(os.TempDir(), "korekta", "korekta.log")
	}
	return filepath.Join(stateHome, "korekta", "korekta.log")
}

// newLogger opens path for appending and returns a logger writing to it.
func newLogger(path, format, level string) (*slog.Logger, func() error, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	h, err := newHandler(f, format, lvl)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return slog.New(h), f.Close, nil
}

func newHandler(w io.Writer, format string, lvl slog.Level) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text", "":
		return slog.NewTextHandler(w, opts), nil
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("unknown log format %q: must be \"text\" or \"json\"", format)
	}
}
