// cmd/server/server_test.go
package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hafsaahmed614/TamkeenLeague/internal/config"
	"github.com/hafsaahmed614/TamkeenLeague/internal/league"
	"github.com/hafsaahmed614/TamkeenLeague/internal/testutil"
)

func newTestServer(t *testing.T, enableMetrics bool) *http.Server {
	t.Helper()

	database := testutil.NewTestDB(t)
	svc := league.NewService(database, 0)

	cfg := &config.Config{}
	cfg.App.Name = "TamkeenLeague"
	cfg.App.Environment = "test"
	cfg.App.Port = 8080
	cfg.Database.Driver = "sqlite"
	cfg.League.LeaderboardLimit = config.DefaultLeaderboardLimit
	cfg.Features.EnableMetrics = enableMetrics

	return newServer(cfg, database, svc)
}

func TestNewServerTimeouts(t *testing.T) {
	server := newTestServer(t, false)

	if server.ReadTimeout != 15*time.Second {
		t.Fatalf("read timeout: %v", server.ReadTimeout)
	}
	if server.WriteTimeout != 15*time.Second {
		t.Fatalf("write timeout: %v", server.WriteTimeout)
	}
	if server.IdleTimeout != 60*time.Second {
		t.Fatalf("idle timeout: %v", server.IdleTimeout)
	}
}

func TestNewServerHealthRoute(t *testing.T) {
	server := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()

	server.Handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", recorder.Code, recorder.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("health status: %q", body["status"])
	}
	if recorder.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID header")
	}
}

func TestNewServerMetricsRouteGated(t *testing.T) {
	withoutMetrics := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	recorder := httptest.NewRecorder()
	withoutMetrics.Handler.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("metrics disabled: %d", recorder.Code)
	}

	withMetrics := newTestServer(t, true)

	recorder = httptest.NewRecorder()
	withMetrics.Handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("metrics enabled: %d", recorder.Code)
	}
}

func TestNewServerAPIRoutes(t *testing.T) {
	server := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil)
	recorder := httptest.NewRecorder()
	server.Handler.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("list teams: %d, body: %s", recorder.Code, recorder.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/rankings/standings", nil)
	recorder = httptest.NewRecorder()
	server.Handler.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("standings: %d, body: %s", recorder.Code, recorder.Body.String())
	}
}
