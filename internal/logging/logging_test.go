package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetup_CreatesLogFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "logging-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dir := filepath.Join(tmpDir, "cache")
	runLog, err := Setup(dir, false)
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	defer runLog.Close()

	if _, err := os.Stat(runLog.Path); err != nil {
		t.Errorf("expected log file to exist: %v", err)
	}

	base := filepath.Base(runLog.Path)
	if !strings.HasPrefix(base, "loudsync_") || !strings.HasSuffix(base, ".log") {
		t.Errorf("unexpected log file name %q", base)
	}
	if filepath.Dir(runLog.Path) != dir {
		t.Errorf("expected log file under %q, got %q", dir, runLog.Path)
	}
}

func TestSetupFileOnly_WritesToFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "logging-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	runLog, err := SetupFileOnly(tmpDir, false)
	if err != nil {
		t.Fatalf("SetupFileOnly returned error: %v", err)
	}

	runLog.Info("pipeline probe message")

	if err := runLog.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	data, err := os.ReadFile(runLog.Path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "pipeline probe message") {
		t.Errorf("expected log file to contain the message, got %q", string(data))
	}
	if !strings.Contains(string(data), "level=info") {
		t.Errorf("expected plain-text formatter output, got %q", string(data))
	}
}

func TestSetup_DebugLevel(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "logging-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	runLog, err := SetupFileOnly(tmpDir, true)
	if err != nil {
		t.Fatalf("SetupFileOnly returned error: %v", err)
	}
	defer runLog.Close()

	if runLog.Level != logrus.DebugLevel {
		t.Errorf("expected debug level, got %v", runLog.Level)
	}
}

func TestConsole(t *testing.T) {
	if Console(false).Level != logrus.InfoLevel {
		t.Errorf("expected info level by default, got %v", Console(false).Level)
	}
	if Console(true).Level != logrus.DebugLevel {
		t.Errorf("expected debug level, got %v", Console(true).Level)
	}
}
