// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `app:
  name: "TamkeenLeague"
  environment: "test"
  port: 8080
database:
  driver: "sqlite"
  filename: "league.db"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.League.LeaderboardLimit != DefaultLeaderboardLimit {
		t.Fatalf("leaderboard limit: %d", cfg.League.LeaderboardLimit)
	}
	if cfg.League.LiveScoreCacheTTL != DefaultLiveScoreCacheTTL {
		t.Fatalf("cache ttl: %v", cfg.League.LiveScoreCacheTTL)
	}
	if cfg.League.CacheSweepCron != DefaultCacheSweepCron {
		t.Fatalf("sweep cron: %q", cfg.League.CacheSweepCron)
	}
}

func TestLoadParsesDurations(t *testing.T) {
	path := writeConfig(t, `app:
  name: "TamkeenLeague"
  environment: "test"
  port: 8080
database:
  driver: "sqlite"
  filename: "league.db"
league:
  leaderboard_limit: 10
  live_score_cache_ttl: "250ms"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.League.LiveScoreCacheTTL.Std() != 250*time.Millisecond {
		t.Fatalf("cache ttl: %v", cfg.League.LiveScoreCacheTTL.Std())
	}
	if cfg.League.LeaderboardLimit != 10 {
		t.Fatalf("leaderboard limit: %d", cfg.League.LeaderboardLimit)
	}
}

func TestLoadRejectsUnsupportedDriver(t *testing.T) {
	path := writeConfig(t, `app:
  name: "TamkeenLeague"
  environment: "test"
  port: 8080
database:
  driver: "postgres"
  filename: "league.db"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
