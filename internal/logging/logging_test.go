package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exprlex.log")

	logger, err := New(Options{Debug: true, File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("hello from test")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file does not contain message: %q", data)
	}
}

func TestProductionSkipsDebug(t *testing.T) {
	t.Setenv(DebugEnv, "")
	path := filepath.Join(t.TempDir(), "exprlex.log")

	logger, err := New(Options{File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	_ = logger.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Errorf("unexpected log content: %q", data)
	}
}

func TestDebugFromEnv(t *testing.T) {
	for _, v := range []string{"1", "true", "ON"} {
		t.Setenv(DebugEnv, v)
		if !DebugFromEnv() {
			t.Errorf("%s=%s should enable debug", DebugEnv, v)
		}
	}
	t.Setenv(DebugEnv, "0")
	if DebugFromEnv() {
		t.Error("0 should not enable debug")
	}
}
