package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/wire"
	"github.com/pullpay/vault-deployer/internal/config"
)

var LoggingSet = wire.NewSet(
	NewLogger,
)

// NewLogger creates a new logger based on runtime configuration
func NewLogger(cfg *config.RuntimeConfig) *slog.Logger {
	return newLogger(os.Stderr, cfg.Debug, os.Getenv("DEPLOYER_LOG_LEVEL"))
}

func newLogger(w io.Writer, debug bool, levelName string) *slog.Logger {
	level := parseLevel(levelName)
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove time for cleaner output
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			// Shorten source paths
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = shortPath(source.File)
				}
			}
			return a
		},
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(val string) slog.Level {
	switch strings.ToLower(val) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		// info, empty or unknown
		return slog.LevelInfo
	}
}

// shortPath returns a shortened version of the file path
func shortPath(file string) string {
	// Try to make paths relative to the module root
	if idx := strings.Index(file, "vault-deployer/"); idx != -1 {
		return file[idx+len("vault-deployer/"):]
	}
	// Last resort: just the filename
	parts := strings.Split(file, "/")
	return parts[len(parts)-1]
}
