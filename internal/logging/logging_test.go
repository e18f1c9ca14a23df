package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestSetupLevel(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Setup(Options{Level: "info", Output: &buf}); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	For("test").Debug("hidden")
	For("test").Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("info line missing: %q", out)
	}
}

func TestSetupInvalidLevel(t *testing.T) {
	if _, err := Setup(Options{Level: "loud"}); err == nil {
		t.Error("Setup() error = nil, want error for invalid level")
	}
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dial.log")
	closer, err := Setup(Options{Level: "info", File: path, JSON: true})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	For("session").Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"module":"session"`) {
		t.Errorf("log file missing module field: %s", data)
	}
}
