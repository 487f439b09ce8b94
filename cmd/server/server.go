// cmd/server/server.go
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hafsaahmed614/TamkeenLeague/internal/api"
	"github.com/hafsaahmed614/TamkeenLeague/internal/api/games"
	"github.com/hafsaahmed614/TamkeenLeague/internal/api/players"
	"github.com/hafsaahmed614/TamkeenLeague/internal/api/rankings"
	"github.com/hafsaahmed614/TamkeenLeague/internal/api/teams"
	"github.com/hafsaahmed614/TamkeenLeague/internal/config"
	"github.com/hafsaahmed614/TamkeenLeague/internal/db"
	"github.com/hafsaahmed614/TamkeenLeague/internal/league"
	"github.com/hafsaahmed614/TamkeenLeague/internal/metrics"
)

func newServer(cfg *config.Config, database *db.DB, svc *league.Service) *http.Server {
	teams.InitHandlers(database)
	players.InitHandlers(database)
	games.InitHandlers(database, svc, cfg.Features.EnableMetrics)
	rankings.InitHandlers(svc, cfg.League.LeaderboardLimit)

	mux := http.NewServeMux()

	// Teams
	mux.HandleFunc("GET /api/v1/teams", teams.HandleListTeams)
	mux.HandleFunc("POST /api/v1/teams", teams.HandleCreateTeam)
	mux.HandleFunc("GET /api/v1/teams/{id}", teams.HandleGetTeam)
	mux.HandleFunc("PUT /api/v1/teams/{id}", teams.HandleUpdateTeam)
	mux.HandleFunc("DELETE /api/v1/teams/{id}", teams.HandleDeleteTeam)

	// Players
	mux.HandleFunc("GET /api/v1/players", players.HandleListPlayers)
	mux.HandleFunc("POST /api/v1/players", players.HandleCreatePlayer)
	mux.HandleFunc("GET /api/v1/players/{id}", players.HandleGetPlayer)
	mux.HandleFunc("PUT /api/v1/players/{id}", players.HandleUpdatePlayer)
	mux.HandleFunc("DELETE /api/v1/players/{id}", players.HandleDeletePlayer)

	// Games and the scoring ledger
	mux.HandleFunc("GET /api/v1/games", games.HandleListGames)
	mux.HandleFunc("POST /api/v1/games", games.HandleCreateGame)
	mux.HandleFunc("GET /api/v1/games/{id}", games.HandleGetGame)
	mux.HandleFunc("DELETE /api/v1/games/{id}", games.HandleDeleteGame)
	mux.HandleFunc("POST /api/v1/games/{id}/start", games.HandleStartGame)
	mux.HandleFunc("POST /api/v1/games/{id}/finalize", games.HandleFinalizeGame)
	mux.HandleFunc("POST /api/v1/games/{id}/scores", games.HandleRecordScore)
	mux.HandleFunc("DELETE /api/v1/scores/{event_id}", games.HandleUndoScore)
	mux.HandleFunc("GET /api/v1/games/{id}/score", games.HandleLiveScore)
	mux.HandleFunc("GET /api/v1/games/{id}/scores/recent", games.HandleRecentScores)

	// Rankings
	mux.HandleFunc("GET /api/v1/rankings/standings", rankings.HandleStandings)
	mux.HandleFunc("GET /api/v1/rankings/leaderboard", rankings.HandleLeaderboard)

	mux.HandleFunc("GET /health", handleHealth(database))
	if cfg.Features.EnableMetrics {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	middlewares := []api.Middleware{
		api.WithRecovery,
		api.WithLogging,
		api.WithRequestID,
	}
	if cfg.Features.EnableMetrics {
		middlewares = append(middlewares, api.WithMetrics)
	}
	handler := api.ChainMiddleware(mux, middlewares...)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func handleHealth(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		if err := database.PingContext(r.Context()); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
			status = "unavailable"
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}
