package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "WEARLOG_"

type Config struct {
	DataDir      string         `json:"data_dir"`
	DBPath       string         `json:"db_path"`
	Locale       string         `json:"locale"`
	Log          LogConfig      `json:"log"`
	Defaults     DefaultsConfig `json:"defaults"`
	Metrics      MetricsConfig  `json:"metrics"`
	TickInterval time.Duration  `json:"tick_interval"`
	CacheSize    int            `json:"cache_size"`
}

type LogConfig struct {
	// Level is a zerolog level name.
	Level string `json:"level"`
	// Format is "console" or "json".
	Format string `json:"format"`
}

// DefaultsConfig seeds the preferences until the user changes them.
type DefaultsConfig struct {
	GoalHours  float64 `json:"goal_hours"`
	DayStartAt string  `json:"day_start_at"`
}

type MetricsConfig struct {
	Addr string `json:"addr"`
}

func (c *Config) SetDefaults() {
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "wearlog.db")
	}
	if c.Locale == "" {
		c.Locale = "fr-FR"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Defaults.GoalHours == 0 {
		c.Defaults.GoalHours = 15
	}
	if c.Defaults.DayStartAt == "" {
		c.Defaults.DayStartAt = "05:00"
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9464"
	}
	if c.TickInterval == 0 {
		c.TickInterval = time.Second
	}
	if c.CacheSize == 0 {
		c.CacheSize = 32
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data dir is required")
	}
	if c.Defaults.GoalHours <= 0 || c.Defaults.GoalHours > 24 {
		return fmt.Errorf("defaults.goal_hours must be in (0, 24], got %v", c.Defaults.GoalHours)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("unknown log format %s", c.Log.Format)
	}
	if c.TickInterval < 0 {
		return fmt.Errorf("tick_interval must be positive")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must be positive")
	}
	return nil
}

// Load builds the configuration for dataDir. An explicit configPath must
// exist; otherwise <dataDir>/config.yaml is read when present. WEARLOG_*
// environment variables override both, "__" separating nested keys.
func Load(dataDir, configPath string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	k := koanf.New(".")

	path := configPath
	if path == "" {
		candidate := filepath.Join(dataDir, "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return Config{}, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load env overrides: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultDataDir is the per-user data directory.
func DefaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "wearlog")
	}
	return ".wearlog"
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
}
