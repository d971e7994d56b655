// Package logging builds the slog logger shared by the commands and the TUI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects where and how records are written.
type Options struct {
	// File receives records when set. The TUI owns the terminal, so it
	// discards records when File is empty instead of falling back to Stderr.
	File   string
	Level  string
	Format string
}

// ParseLevel maps debug, info, warn and error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

// NewHandler returns a text or JSON handler writing to w.
func NewHandler(w io.Writer, level slog.Level, format string) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.NewTextHandler(w, opts), nil
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	}
	return nil, fmt.Errorf("log format %q: must be text or json", format)
}

// ForCommand logs to o.File if set, else to stderr.
func ForCommand(o Options) (*slog.Logger, func() error, error) {
	return build(o, os.Stderr)
}

// ForTUI logs to o.File if set, else nowhere.
func ForTUI(o Options) (*slog.Logger, func() error, error) {
	return build(o, io.Discard)
}

func build(o Options, fallback io.Writer) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(o.Level)
	if err != nil {
		return nil, nil, err
	}
	w := fallback
	closer := func() error { return nil }
	if o.File != "" {
		f, err := os.OpenFile(o.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w, closer = f, f.Close
	}
	h, err := NewHandler(w, level, o.Format)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}
	return slog.New(h), closer, nil
}
