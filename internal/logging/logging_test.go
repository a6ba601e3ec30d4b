package logging

import (
	"bytes"
	"strings"
	"testing"

	"assessor/internal/config"
)

// TestNewRejectsInvalidSettings verifies bad levels and formats are reported.
func TestNewRejectsInvalidSettings(t *testing.T) {
	if _, err := New(config.LoggingConfig{Level: "verbose", Format: "json"}, nil); err == nil {
		t.Fatalf("expected level error")
	}
	if _, err := New(config.LoggingConfig{Level: "info", Format: "xml"}, nil); err == nil {
		t.Fatalf("expected format error")
	}
}

// TestNewJSONFiltersByLevel verifies entries below the level are dropped.
func TestNewJSONFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	_ = logger.Sync()
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), `"msg":"shown"`) {
		t.Fatalf("unexpected log output %q", buf.String())
	}
}

// TestNewConsoleFormat verifies the console encoder is plain text.
func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "warn", Format: "console"}, &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("quiet")
	logger.Warn("loud")
	_ = logger.Sync()
	out := buf.String()
	if strings.Contains(out, "quiet") || !strings.Contains(out, "WARN") || strings.HasPrefix(out, "{") {
		t.Fatalf("unexpected console output %q", out)
	}
}
