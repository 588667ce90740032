// Package logger owns the process-wide zerolog instance. Init builds it
// once at startup; Get hands it out to code that cannot take it as a
// dependency.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how Init builds the logger.
type Options struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	// Anything unrecognised falls back to info.
	Level string
	// Pretty switches to human-readable console output for local
	// development; production stays on JSON.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu       sync.Mutex
	instance zerolog.Logger
	ready    bool
)

// Init builds the singleton and returns it. Calls after the first are
// no-ops that return the existing instance.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if ready {
		return instance
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	instance = zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
	ready = true
	return instance
}

// Get returns the singleton. Panics when Init has not run; a silent
// zero logger would swallow output with no trace of why.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !ready {
		panic("logger: Get before Init")
	}
	return instance
}

// Reset discards the singleton so the next Init rebuilds it. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = zerolog.Logger{}
	ready = false
}
