package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"data_dir", cfg.DataDir, dir},
		{"db_path", cfg.DBPath, filepath.Join(dir, "wearlog.db")},
		{"locale", cfg.Locale, "fr-FR"},
		{"goal", cfg.Defaults.GoalHours, 15.0},
		{"day_start", cfg.Defaults.DayStartAt, "05:00"},
		{"tick", cfg.TickInterval, time.Second},
		{"log.format", cfg.Log.Format, "console"},
		{"metrics.addr", cfg.Metrics.Addr, ":9464"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadYAMLFromDataDirAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	data := `locale: en-US
log:
  level: debug
  format: json
defaults:
  goal_hours: 12
  day_start_at: "04:30"
cache_size: 8
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WEARLOG_DEFAULTS__GOAL_HOURS", "18")
	t.Setenv("WEARLOG_METRICS__ADDR", "127.0.0.1:9500")
	t.Setenv("WEARLOG_CACHE_SIZE", "16")

	cfg, err := Load(dir, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Locale != "en-US" || cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected file values: %+v", cfg)
	}
	if cfg.Defaults.DayStartAt != "04:30" {
		t.Fatalf("unexpected defaults: %+v", cfg.Defaults)
	}
	if cfg.Defaults.GoalHours != 18 {
		t.Fatalf("env override not applied, goal=%v", cfg.Defaults.GoalHours)
	}
	if cfg.Metrics.Addr != "127.0.0.1:9500" || cfg.CacheSize != 16 {
		t.Fatalf("env overrides not applied: addr=%q cache=%d", cfg.Metrics.Addr, cfg.CacheSize)
	}
}

func TestLoadRejectsUnknownFormatAndBadGoal(t *testing.T) {
	dir := t.TempDir()
	toml := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(toml, []byte("x = 1"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(dir, toml); err == nil {
		t.Fatalf("expected unsupported format error")
	}

	jsonPath := filepath.Join(dir, "config.json")
	if err := os.WriteFile(jsonPath, []byte(`{"defaults":{"goal_hours":-2}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(dir, jsonPath); err == nil {
		t.Fatalf("expected negative goal to fail validation")
	}
	if _, err := Load("", ""); err == nil {
		t.Fatalf("expected empty data dir to fail")
	}
}
