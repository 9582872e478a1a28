// Package obs provides process-wide structured logging for termcore.
// Grounded on vito-dang's go.mod, which wires github.com/lmittmann/tint as
// a colorized slog.Handler for terminal-adjacent CLI tooling; parser and
// compositor diagnostics here use the same handler so malformed input (see
// spec.md §7) is logged at debug level instead of panicking or being
// silently eaten with no trace at all.
package obs

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

var (
	mu      sync.Mutex
	current *slog.Logger
)

// Default returns the process-wide logger, lazily initializing it on first
// use with a tint handler writing to stderr at Info level.
func Default() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = newLogger(os.Stderr, slog.LevelInfo)
	}
	return current
}

// Init replaces the process-wide logger. It returns nothing and may be
// called any number of times; each call replaces the previous logger
// (this package allows reconfiguration, e.g. in tests).
func Init(w io.Writer, level slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	current = newLogger(w, level)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	h := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
	return slog.New(h)
}

// Component returns a logger scoped with a "component" field, matching the
// way each subsystem (vtparser, renderop, input, pty) tags its own
// diagnostics.
func Component(name string) *slog.Logger {
	return Default().With(slog.String("component", name))
}
