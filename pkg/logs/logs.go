// Package logs keeps the slog handlers that write into log files.
package logs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type logHandler struct {
	f *os.File
	h slog.Handler
}

func newLogHandler(p string, opts *slog.HandlerOptions) (*logHandler, error) {
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &logHandler{
		f: f,
		h: slog.NewJSONHandler(f, opts),
	}, nil
}

func (h *logHandler) Close() error {
	return h.f.Close()
}

// Dir owns the log files under a directory, one per name.
type Dir struct {
	path  string
	level slog.Leveler

	handlers map[string]*logHandler
}

// DefaultPath returns <user cache dir>/frarold/logs.
func DefaultPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "frarold", "logs"), nil
}

func Open(path string, level slog.Leveler) (*Dir, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, err
	}
	return &Dir{
		path:     path,
		level:    level,
		handlers: map[string]*logHandler{},
	}, nil
}

func (d *Dir) Path() string {
	return d.path
}

// NewLogHandler returns the handler for name, creating <name>.jsonl on
// first use.
func (d *Dir) NewLogHandler(name string) (slog.Handler, error) {
	h, ok := d.handlers[name]
	if ok {
		return h.h, nil
	}
	if name == "" || strings.Contains(name, "/") {
		return nil, fmt.Errorf("malformed log name %q", name)
	}
	pathName := name
	if !strings.Contains(name, ".") {
		pathName = name + ".jsonl"
	}
	h, err := newLogHandler(filepath.Join(d.path, pathName), &slog.HandlerOptions{
		AddSource: true,
		Level:     d.level,
	})
	if err != nil {
		return nil, err
	}
	d.handlers[name] = h
	return h.h, nil
}

// Logger is NewLogHandler wrapped in a *slog.Logger.
func (d *Dir) Logger(name string) (*slog.Logger, error) {
	h, err := d.NewLogHandler(name)
	if err != nil {
		return nil, err
	}
	return slog.New(h), nil
}

func (d *Dir) Close() error {
	var allerr error
	for name, h := range d.handlers {
		if err := h.Close(); err != nil {
			allerr = errors.Join(allerr, fmt.Errorf("failed to close %s: %w", name, err))
		}
	}
	d.handlers = map[string]*logHandler{}
	return allerr
}

// Discard is a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
