package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/optimscale/internal/config"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	t.Setenv(LevelEnv, "")
	path := filepath.Join(t.TempDir(), "logs", "out.log")

	log, closer, err := New(config.LogConfig{Level: "info", Format: "json", File: path})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	log.Debug().Msg("hidden")
	log.Info().Str("metric", "burn").Msg("visible")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	got := string(data)
	if strings.Contains(got, "hidden") {
		t.Error("debug line written at info level")
	}
	if !strings.Contains(got, `"metric":"burn"`) || !strings.Contains(got, "visible") {
		t.Errorf("log = %q", got)
	}
}

func TestNew_EnvOverridesLevel(t *testing.T) {
	t.Setenv(LevelEnv, "debug")
	path := filepath.Join(t.TempDir(), "out.log")

	log, closer, err := New(config.LogConfig{Level: "error", Format: "json", File: path})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	log.Debug().Msg("drag start")
	_ = closer.Close()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "drag start") {
		t.Errorf("debug line missing with %s=debug", LevelEnv)
	}
}

func TestNew_DefaultPathUnderConfigDir(t *testing.T) {
	t.Setenv(LevelEnv, "")
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	_, closer, err := New(config.LogConfig{Level: "info", Format: "console"})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	_ = closer.Close()

	if _, err := os.Stat(filepath.Join(dir, "optimscale", "optimscale.log")); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestNew_BadLevel(t *testing.T) {
	t.Setenv(LevelEnv, "")
	if _, _, err := New(config.LogConfig{Level: "loud", File: Stderr}); err == nil {
		t.Error("New() accepted an unknown level")
	}
}
