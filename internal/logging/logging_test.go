package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("expected level info, got %s", cfg.Level)
	}
	if cfg.FilePath != "" {
		t.Errorf("expected no file, got %s", cfg.FilePath)
	}
	if !cfg.WriteToStderr {
		t.Error("expected WriteToStderr to be true")
	}
}

func TestDebugConfig(t *testing.T) {
	if cfg := DebugConfig(); cfg.Level != "debug" {
		t.Errorf("expected level debug, got %s", cfg.Level)
	}
}

func TestSetup_StderrJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := Setup(DebugConfig(), &buf)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer cleanup()

	logger.Debug("hello", "key", "value")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}
	if entry["msg"] != "hello" || entry["key"] != "value" || entry["level"] != "DEBUG" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestSetup_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := Setup(Config{Level: "warn", WriteToStderr: true}, &buf)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer cleanup()

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info message should be filtered: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestSetup_FileOnly(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "debug", "applog.json")

	logger, cleanup, err := Setup(Config{Level: "debug", FilePath: path}, &buf)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	logger.Info("to file")
	cleanup()

	if buf.Len() != 0 {
		t.Errorf("stderr should be empty, got %q", buf.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"to file"`) {
		t.Errorf("file missing entry: %s", data)
	}
}

func TestSetup_InvalidLevel(t *testing.T) {
	if _, _, err := Setup(Config{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for invalid level")
	}
}
