package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_CustomPath(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Info("hello %s", "world")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello world") {
		t.Errorf("log file missing message, got: %s", data)
	}
}

func TestInit_Twice(t *testing.T) {
	Reset()
	defer Reset()

	first := filepath.Join(t.TempDir(), "first.log")
	second := filepath.Join(t.TempDir(), "second.log")

	if err := Init(first); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	// Second Init is a no-op; the first path wins.
	if err := Init(second); err != nil {
		t.Fatalf("second Init should not error: %v", err)
	}
	if Path() != first {
		t.Errorf("Path = %q, want %q", Path(), first)
	}
}

func TestDebugLevel(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// Default level is Info; debug messages are dropped.
	Debug("dropped message")
	SetDebug(true)
	Debug("kept message")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if strings.Contains(string(data), "dropped message") {
		t.Error("debug message logged before SetDebug(true)")
	}
	if !strings.Contains(string(data), "kept message") {
		t.Error("debug message missing after SetDebug(true)")
	}
}

func TestInit_BadPath(t *testing.T) {
	Reset()
	defer Reset()

	if err := Init("/nonexistent-dir/test.log"); err == nil {
		t.Error("expected error for unwritable path")
	}
}
