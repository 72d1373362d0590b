package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestConfig(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		opts     Options
		encoding string
		level    zapcore.Level
		output   string
	}{
		{name: "defaults", opts: Options{}, encoding: "console", level: zapcore.InfoLevel, output: "stderr"},
		{name: "json debug", opts: Options{JSON: true, Debug: true, Output: "stdout"}, encoding: "json", level: zapcore.DebugLevel, output: "stdout"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Config(tc.opts)
			if cfg.Encoding != tc.encoding {
				t.Fatalf("expected encoding %q, got %q", tc.encoding, cfg.Encoding)
			}
			if cfg.Level.Level() != tc.level {
				t.Fatalf("expected level %s, got %s", tc.level, cfg.Level.Level())
			}
			if len(cfg.OutputPaths) != 1 || cfg.OutputPaths[0] != tc.output {
				t.Fatalf("unexpected output paths: %v", cfg.OutputPaths)
			}
			if cfg.EncoderConfig.MessageKey != "step" {
				t.Fatalf("unexpected message key: %q", cfg.EncoderConfig.MessageKey)
			}
		})
	}
}

func TestBuildWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")

	logger, err := Build(Options{JSON: true, Output: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("slate is ready")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("expected a single json entry, got %q: %v", data, err)
	}

	if entry["step"] != "slate is ready" || entry["level"] != "info" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}
