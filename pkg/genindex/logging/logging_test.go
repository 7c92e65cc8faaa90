package logging_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jamesainslie/genindex/pkg/genindex/logging"
)

// These tests share the package's global state and must not run in parallel.

func TestInit(t *testing.T) {
	validDir := t.TempDir()
	componentsDir := t.TempDir()

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		cfg     logging.Config
		wantErr bool
	}{
		{
			name: "console only",
			cfg:  logging.Config{Level: "info", ConsoleLevel: "warn", Console: &bytes.Buffer{}},
		},
		{
			name: "empty level defaults to info",
			cfg:  logging.Config{},
		},
		{
			name: "log file",
			cfg:  logging.Config{Level: "debug", Path: filepath.Join(validDir, "nested", "genindex.log")},
		},
		{
			name: "component overrides",
			cfg: logging.Config{
				Level: "info",
				Path:  filepath.Join(componentsDir, "components.log"),
				Components: map[string]string{
					"indexer": "debug",
					"cli":     "warn",
				},
			},
		},
		{
			name:    "invalid level",
			cfg:     logging.Config{Level: "loud"},
			wantErr: true,
		},
		{
			name:    "invalid console level",
			cfg:     logging.Config{ConsoleLevel: "chatty"},
			wantErr: true,
		},
		{
			name:    "invalid component level",
			cfg:     logging.Config{Components: map[string]string{"indexer": "verbose"}},
			wantErr: true,
		},
		{
			name:    "log directory is a file",
			cfg:     logging.Config{Path: filepath.Join(blocker, "genindex.log")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := logging.Init(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Init() error = %v, wantErr %v", err, tt.wantErr)
			}
			if closeErr := logging.Close(); closeErr != nil {
				t.Errorf("Close() error = %v", closeErr)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    logging.Level
		wantErr bool
	}{
		{"debug", logging.LevelDebug, false},
		{"INFO", logging.LevelInfo, false},
		{"warn", logging.LevelWarn, false},
		{"warning", logging.LevelWarn, false},
		{"Error", logging.LevelError, false},
		{"trace", logging.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, logging.ErrInvalidLevel) {
				t.Errorf("error %v does not wrap ErrInvalidLevel", err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level logging.Level
		want  string
	}{
		{logging.LevelDebug, "debug"},
		{logging.LevelInfo, "info"},
		{logging.LevelWarn, "warn"},
		{logging.LevelError, "error"},
		{logging.Level(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestConsoleOutput(t *testing.T) {
	var console bytes.Buffer

	// Obtained before Init: must pick up the configuration afterwards.
	logger := logging.Get("console-test")

	if err := logging.Init(logging.Config{ConsoleLevel: "warn", Console: &console}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer func() {
		if err := logging.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}()

	logger.Info("hidden message")
	logger.Warn("entry not readable", "path", "/tmp/x")

	out := console.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("info message reached a warn-level console: %q", out)
	}
	if !strings.Contains(out, "entry not readable") {
		t.Errorf("warn message missing from console: %q", out)
	}
	if !strings.Contains(out, "console-test") {
		t.Errorf("component prefix missing from console: %q", out)
	}
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genindex.log")

	if err := logging.Init(logging.Config{Level: "info", Path: path}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	logger := logging.Get("file-test").With("root", "/srv")
	logger.Debug("below level")
	logger.Info("page written", "entries", 3)

	if err := logging.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "below level") {
		t.Errorf("debug message written at info level: %q", content)
	}
	if !strings.Contains(content, "page written") || !strings.Contains(content, "root=/srv") {
		t.Errorf("log file missing expected entry: %q", content)
	}
}

func TestGetBeforeInitIsSilent(t *testing.T) {
	logger := logging.Get("silent-test")
	if logger == nil {
		t.Fatal("Get() returned nil")
	}
	if logger.Component() != "silent-test" {
		t.Errorf("Component() = %q", logger.Component())
	}
	logger.Error("goes nowhere")

	if again := logging.Get("silent-test"); again != logger {
		t.Error("Get() should return the cached logger")
	}
}

func TestConsoleLevelFor(t *testing.T) {
	tests := []struct {
		verbose, quiet bool
		want           string
	}{
		{false, false, "warn"},
		{true, false, "debug"},
		{false, true, "error"},
		{true, true, "error"},
	}

	for _, tt := range tests {
		if got := logging.ConsoleLevelFor(tt.verbose, tt.quiet); got != tt.want {
			t.Errorf("ConsoleLevelFor(%v, %v) = %q, want %q", tt.verbose, tt.quiet, got, tt.want)
		}
	}
}
