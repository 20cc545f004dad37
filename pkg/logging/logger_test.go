package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelInfo {
		t.Errorf("Expected default level to be Info, got %s", cfg.Level)
	}
	if cfg.Pretty {
		t.Error("Expected default pretty to be false")
	}
	if cfg.Output == nil {
		t.Error("Expected default output to be set")
	}
}

func TestSetup(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	tests := []struct {
		name       string
		level      LogLevel
		logFunc    func(zerolog.Logger)
		wantOutput bool
	}{
		{"info at info", LevelInfo, func(l zerolog.Logger) { l.Info().Msg("visible") }, true},
		{"debug at info", LevelInfo, func(l zerolog.Logger) { l.Debug().Msg("hidden") }, false},
		{"debug at debug", LevelDebug, func(l zerolog.Logger) { l.Debug().Msg("visible") }, true},
		{"info at warn", LevelWarn, func(l zerolog.Logger) { l.Info().Msg("hidden") }, false},
		{"error at error", LevelError, func(l zerolog.Logger) { l.Error().Msg("visible") }, true},
		{"error when disabled", LevelDisabled, func(l zerolog.Logger) { l.Error().Msg("hidden") }, false},
		{"unknown falls back to info", LogLevel("verbose"), func(l zerolog.Logger) { l.Info().Msg("visible") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := Setup(Config{Level: tt.level, Output: buf})
			tt.logFunc(logger)

			if got := buf.Len() > 0; got != tt.wantOutput {
				t.Errorf("output present = %v, want %v (output: %q)", got, tt.wantOutput, buf.String())
			}
		})
	}
}

func TestSetup_Pretty(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	buf := &bytes.Buffer{}
	logger := Setup(Config{Level: LevelInfo, Pretty: true, Output: buf})
	logger.Info().Str("route", "/hearts/:id").Msg("pretty message")

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("pretty output looks like JSON: %q", out)
	}
	if !strings.Contains(out, "pretty message") {
		t.Errorf("output missing message: %q", out)
	}
}

func TestSetup_SetsGlobalLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelInfo, Output: buf})

	log.Info().Msg("global message")
	if !strings.Contains(buf.String(), "global message") {
		t.Errorf("global logger not replaced, output: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"", LevelInfo, false},
		{"info", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"off", LevelDisabled, false},
		{" info ", LevelInfo, false},
		{"verbose", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelInfo, Output: buf})

	logger := NewLogger(ComponentAsset)
	logger.Info().Msg("component test")

	if !strings.Contains(buf.String(), `"component":"asset"`) {
		t.Errorf("component field missing: %q", buf.String())
	}
}
