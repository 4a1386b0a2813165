package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"info", logrus.InfoLevel},
		{"warning", logrus.WarnLevel},
		{"warn", logrus.WarnLevel},
		{"ERROR", logrus.ErrorLevel},
		{"debug", logrus.DebugLevel},
	}
	for _, tt := range tests {
		log, err := New(&bytes.Buffer{}, tt.level)
		if err != nil {
			t.Fatalf("New(%q): %v", tt.level, err)
		}
		if log.GetLevel() != tt.want {
			t.Errorf("New(%q) level = %v, want %v", tt.level, log.GetLevel(), tt.want)
		}
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "chatty"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestOutputPlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "info")
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("hidden")
	log.Warn("Can't determine type for StoreLogo.png")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line logged at info level: %q", out)
	}
	if !strings.Contains(out, "level=warning") {
		t.Errorf("missing level field: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("unexpected color escape in %q", out)
	}
	if strings.Contains(out, "time=") {
		t.Errorf("unexpected timestamp in %q", out)
	}
}
