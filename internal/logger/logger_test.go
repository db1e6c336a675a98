package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
	} {
		if got := parseLevel(tc.in); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/x.log")
	if cfg.Path != "/tmp/x.log" || cfg.MaxSizeMB != 50 || cfg.MaxBackups != 3 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestNewSilent(t *testing.T) {
	log := New("info", FileConfig{}, false)
	if log == nil {
		t.Fatal("nil logger")
	}
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("silent logger has an enabled core")
	}
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latc.log")
	log := New("info", DefaultFileConfig(path), false)

	log.Info("expansion complete")
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "expansion complete") {
		t.Errorf("log file missing entry: %q", data)
	}
	// Debug entries stay below the level gate.
	log.Debug("hidden")
	log.Sync()
	data, _ = os.ReadFile(path)
	if strings.Contains(string(data), "hidden") {
		t.Error("debug entry logged at info level")
	}
}
