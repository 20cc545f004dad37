// Package logging configures zerolog for the chute client and CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"

	// LevelDisabled turns logging off.
	LevelDisabled LogLevel = "disabled"
)

// Component names used in the "component" field.
const (
	ComponentClient     = "chute-client"
	ComponentPagination = "pagination"
	ComponentResource   = "resource"
	ComponentAsset      = "asset"
	ComponentCLI        = "cli"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger. Unknown levels fall back to info.
func Setup(cfg Config) zerolog.Logger {
	level, err := ParseLevel(string(cfg.Level))
	if err != nil {
		level = LevelInfo
	}
	zerolog.SetGlobalLevel(zerologLevel(level))

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	logger := zerolog.New(out).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}

// ParseLevel validates a level name. "warning" is accepted for warn and the
// empty string selects info.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "disabled", "off", "none":
		return LevelDisabled, nil
	default:
		return "", fmt.Errorf("unknown log level %q", s)
	}
}

func zerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelDisabled:
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: request and paging flow
//   - Outgoing requests (route, method, request_id)
//   - Collection loads and page fetches (mode, page, items, more)
//   - Heart and unheart success
//
// Info: lifecycle events
//   - CLI start, configuration summary, metrics listener
//
// Warn: failures the caller sees as an error value
//   - 4xx/5xx responses
//   - Failed initial collection loads and gets
//
// Error: conditions leaving local state inconsistent
//   - Transport failures
//   - Receipt store failures after a successful heart request
//
// Context Fields:
//   - component: emitting package
//   - route: route template, e.g. /albums/:album/assets/:id
//   - status: HTTP status code
//   - error_class: client, server, network, decode
//   - mode: cursor or page
//   - key: receipt key
