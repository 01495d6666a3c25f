package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/optimscale/internal/dataset"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.General.Degree != 1 || cfg.General.Horizon != 12 || cfg.General.MarketingHistory != 10 {
		t.Fatalf("general defaults = %+v", cfg.General)
	}
	if cfg.Appearance.Theme != "flexoki-dark" || cfg.Appearance.Layout != "single" {
		t.Errorf("appearance defaults = %+v", cfg.Appearance)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("log defaults = %+v", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if got, want := ConfigPath(), filepath.Join(dir, "optimscale", "config.toml"); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
	if Exists() {
		t.Error("Exists() = true before Save")
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.General.Horizon != 12 {
		t.Errorf("Horizon = %d, want 12", cfg.General.Horizon)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.Degree = 2
	cfg.Appearance.Layout = "grid"
	sens := 250.0
	cfg.Metrics = map[string]MetricOverride{"marketing": {DragSensitivity: &sens}}

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	info, err := os.Stat(ConfigPath())
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config perm = %o, want 600", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.General.Degree != 2 || got.Appearance.Layout != "grid" {
		t.Errorf("loaded = %+v", got)
	}
	if o := got.Metrics["marketing"]; o.DragSensitivity == nil || *o.DragSensitivity != 250 {
		t.Errorf("marketing override = %+v", o)
	}
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	if err := os.WriteFile(path, []byte("[appearance]\ntheme = \"light\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Appearance.Theme != "light" {
		t.Errorf("Theme = %q", cfg.Appearance.Theme)
	}
	if cfg.Appearance.Layout != "single" || cfg.General.Horizon != 12 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	cases := map[string]string{
		"degree":    "[general]\ndegree = 3\n",
		"layout":    "[appearance]\nlayout = \"stacked\"\n",
		"precision": "[metrics.burn]\nprecision = 12\n",
		"syntax":    "[general\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.toml")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFrom(path); err == nil {
				t.Errorf("LoadFrom(%q) succeeded, want error", body)
			}
		})
	}
}

func TestApply(t *testing.T) {
	ds, err := dataset.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.General.Degree = 2
	cfg.General.MarketingHistory = 8
	prec := 1
	cfg.Metrics = map[string]MetricOverride{"burn": {Precision: &prec}}

	if err := cfg.Apply(ds); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	burn, _ := ds.Metric("burn")
	if burn.Degree != 2 || burn.Precision != 1 {
		t.Errorf("burn spec = %+v", burn.MetricSpec)
	}
	spend, _ := ds.Metric(dataset.MarketingKey)
	if spend.History != 8 || spend.Horizon != 12 {
		t.Errorf("marketing spec = %+v", spend.MetricSpec)
	}
}

func TestApply_UnknownMetric(t *testing.T) {
	ds, err := dataset.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Metrics = map[string]MetricOverride{"churn": {}}

	err = cfg.Apply(ds)
	if err == nil || !strings.Contains(err.Error(), "churn") {
		t.Errorf("Apply() error = %v, want unknown metric churn", err)
	}
}
