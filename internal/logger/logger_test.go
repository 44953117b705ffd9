package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesToRotatingFile(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("hidden debug message")
	Info("roster loaded", "employees", 7)

	data, err := os.ReadFile(Path(configDir))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "roster loaded") {
		t.Errorf("expected info message in log file, got: %s", content)
	}
	if strings.Contains(content, "hidden debug message") {
		t.Error("debug message written without debug mode")
	}
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	Debug("visible debug message")

	data, err := os.ReadFile(Path(configDir))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "visible debug message") {
		t.Error("debug message missing in debug mode")
	}
}

func TestHelpersWithoutInit(t *testing.T) {
	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Must not panic when uninitialized
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}

func TestComponentPrefix(t *testing.T) {
	// Before Init the component logger discards output
	Component("session").Info("dropped")

	configDir := filepath.Join(t.TempDir(), "config")
	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	Component("holidays").Warn("file reload failed", "path", "feiertage.yaml")

	data, err := os.ReadFile(Path(configDir))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "roster/holidays") {
		t.Errorf("expected component prefix in log file, got: %s", content)
	}
	if !strings.Contains(content, "file reload failed") {
		t.Errorf("expected component message in log file, got: %s", content)
	}
}
