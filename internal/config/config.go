// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

// Duration wraps time.Duration so YAML values like "5s" parse.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type LeagueConfig struct {
	// LeaderboardLimit caps the leaderboard at the top N scorers.
	LeaderboardLimit int `yaml:"leaderboard_limit"`
	// LiveScoreCacheTTL bounds how stale a cached live score may be.
	// Writes invalidate eagerly, so the bound only matters between reads.
	LiveScoreCacheTTL Duration `yaml:"live_score_cache_ttl"`
	// CacheSweepCron schedules the background eviction of expired
	// live-score cache entries.
	CacheSweepCron string `yaml:"cache_sweep_cron"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`

	League LeagueConfig `yaml:"league"`

	Features struct {
		EnableMetrics bool `yaml:"enable_metrics"`
		EnableDebug   bool `yaml:"enable_debug"`
	} `yaml:"features"`
}

const (
	DefaultLeaderboardLimit  = 15
	DefaultLiveScoreCacheTTL = Duration(5 * time.Second)
	DefaultCacheSweepCron    = "* * * * *"
)

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Read and parse YAML config
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	cfg.applyDefaults()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.League.LeaderboardLimit == 0 {
		c.League.LeaderboardLimit = DefaultLeaderboardLimit
	}
	if c.League.LiveScoreCacheTTL == 0 {
		c.League.LiveScoreCacheTTL = DefaultLiveScoreCacheTTL
	}
	if c.League.CacheSweepCron == "" {
		c.League.CacheSweepCron = DefaultCacheSweepCron
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.League.LeaderboardLimit < 1 {
		return fmt.Errorf("leaderboard limit must be positive")
	}
	if c.League.LiveScoreCacheTTL < 0 {
		return fmt.Errorf("live score cache TTL cannot be negative")
	}

	return nil
}
