// Package logger builds the process slog logger (tint on terminals, JSON
// otherwise) and the Interface used by services.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Config selects level, format and destination.
type Config struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
	// Debug adds source locations to every level.
	Debug bool `mapstructure:"-"`
}

var (
	mu      sync.RWMutex
	current *slog.Logger
	level   = new(slog.LevelVar)
)

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init installs the process logger and makes it the slog default.
func Init(cfg Config) error {
	w, err := openOutput(cfg.OutputPath)
	if err != nil {
		return err
	}
	l := slog.New(newHandler(w, cfg))

	mu.Lock()
	current = l
	mu.Unlock()
	slog.SetDefault(l)
	return nil
}

// New returns a logger for cfg writing to w without touching the process default.
func New(w io.Writer, cfg Config) *slog.Logger {
	return slog.New(newHandler(w, cfg))
}

func newHandler(w io.Writer, cfg Config) slog.Handler {
	level.Set(ParseLevel(cfg.Level))

	sourceLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.Debug {
		sourceLevels = append(sourceLevels, slog.LevelDebug, slog.LevelInfo)
	}

	if strings.EqualFold(cfg.Format, "json") {
		return NewConditionalSourceHandler(
			slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}),
			sourceLevels...,
		)
	}
	return NewConditionalSourceHandler(
		tint.NewHandler(w, &tint.Options{
			Level:       level,
			TimeFormat:  time.DateTime,
			NoColor:     !isTerminal(w),
			ReplaceAttr: tintErrors,
		}),
		sourceLevels...,
	)
}

func tintErrors(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" && a.Value.Kind() == slog.KindAny {
		if err, ok := a.Value.Any().(error); ok {
			return tint.Err(err)
		}
	}
	return a
}

func openOutput(path string) (io.Writer, error) {
	switch strings.ToLower(path) {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Get returns the process logger, falling back to a console logger on stdout.
func Get() *slog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = slog.New(newHandler(os.Stdout, Config{}))
	}
	return current
}
