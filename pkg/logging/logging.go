// Package logging configures the process-wide slog logger.
package logging

import (
	"log/slog"
	"os"
	"sync"
)

var (
	mu     sync.RWMutex
	global = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

// Setup installs a text handler on stderr and returns it. With debug set,
// the level drops to Debug and source locations are attached.
func Setup(debug bool) *slog.Logger {
	level := slog.LevelInfo
	addSource := false
	if debug {
		level = slog.LevelDebug
		addSource = true
	}

	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
	})
	l := slog.New(h)

	mu.Lock()
	global = l
	mu.Unlock()

	return l
}

// L returns the current process logger.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}
