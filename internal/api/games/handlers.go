// internal/api/games/handlers.go
package games

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hafsaahmed614/TamkeenLeague/internal/api/apiutil"
	appdb "github.com/hafsaahmed614/TamkeenLeague/internal/db"
	"github.com/hafsaahmed614/TamkeenLeague/internal/league"
	"github.com/hafsaahmed614/TamkeenLeague/internal/metrics"
	"github.com/hafsaahmed614/TamkeenLeague/internal/models"
)

const (
	gameQueryTimeout   = 5 * time.Second
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

var (
	queries        *appdb.Queries
	service        *league.Service
	metricsEnabled bool
)

type createGameRequest struct {
	HomeTeamID int64  `json:"homeTeamId"`
	AwayTeamID int64  `json:"awayTeamId"`
	StartTime  string `json:"startTime"`
	Location   string `json:"location"`
}

type recordScoreRequest struct {
	TeamID   int64 `json:"teamId"`
	PlayerID int64 `json:"playerId"`
	Points   int64 `json:"points"`
}

type recordScoreResponse struct {
	EventID int64 `json:"eventId"`
}

type recentScore struct {
	EventID      int64     `json:"eventId"`
	TeamID       int64     `json:"teamId"`
	TeamName     string    `json:"teamName"`
	PlayerID     int64     `json:"playerId"`
	PlayerName   string    `json:"playerName"`
	JerseyNumber int64     `json:"jerseyNumber"`
	Points       int64     `json:"points"`
	CreatedAt    time.Time `json:"createdAt"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB, svc *league.Service, enableMetrics bool) {
	if database != nil {
		queries = database.Queries
	}
	service = svc
	metricsEnabled = enableMetrics
}

// GET /api/v1/games?status=
func HandleListGames(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	var (
		games []models.Game
		err   error
	)
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.GameStatus(raw)
		if !status.Valid() {
			apiutil.WriteFieldError(w, r, "status", "must be scheduled, live, or final")
			return
		}
		games, err = queries.ListGamesByStatus(ctx, status)
	} else {
		games, err = queries.ListGames(ctx)
	}
	if err != nil {
		apiutil.WriteError(w, r, league.MapStoreError(err))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, games)
}

// POST /api/v1/games
func HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteFieldError(w, r, "body", "must be valid JSON")
		return
	}
	if req.HomeTeamID <= 0 {
		apiutil.WriteFieldError(w, r, "homeTeamId", "is required")
		return
	}
	if req.AwayTeamID <= 0 {
		apiutil.WriteFieldError(w, r, "awayTeamId", "is required")
		return
	}
	if req.HomeTeamID == req.AwayTeamID {
		apiutil.WriteFieldError(w, r, "awayTeamId", "must differ from homeTeamId")
		return
	}
	location := strings.TrimSpace(req.Location)
	if location == "" {
		apiutil.WriteFieldError(w, r, "location", "is required")
		return
	}
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		apiutil.WriteFieldError(w, r, "startTime", "must be an RFC 3339 timestamp")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	for _, teamID := range []int64{req.HomeTeamID, req.AwayTeamID} {
		if _, err := queries.GetTeam(ctx, teamID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				apiutil.WriteError(w, r, fmt.Errorf("team %d: %w", teamID, league.ErrNotFound))
				return
			}
			apiutil.WriteError(w, r, league.MapStoreError(err))
			return
		}
	}

	game, err := queries.CreateGame(ctx, appdb.CreateGameParams{
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		StartTime:  startTime.UTC(),
		Location:   location,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		apiutil.WriteError(w, r, league.MapStoreError(err))
		return
	}

	log.Ctx(r.Context()).Info().
		Int64("game_id", game.ID).
		Int64("home_team_id", game.HomeTeamID).
		Int64("away_team_id", game.AwayTeamID).
		Time("start_time", game.StartTime).
		Msg("Game scheduled")
	apiutil.WriteJSON(w, http.StatusCreated, game)
}

// GET /api/v1/games/{id}
func HandleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	game, err := queries.GetGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, fmt.Errorf("game %d: %w", gameID, league.ErrNotFound))
			return
		}
		apiutil.WriteError(w, r, league.MapStoreError(err))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, game)
}

// DELETE /api/v1/games/{id}
func HandleDeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	if err := service.DeleteGame(ctx, gameID); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/games/{id}/start
func HandleStartGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	if err := service.StartGame(ctx, gameID); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": string(models.GameLive)})
}

// POST /api/v1/games/{id}/finalize
func HandleFinalizeGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	score, err := service.FinalizeGame(ctx, gameID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if metricsEnabled {
		metrics.IncGameFinalized()
	}
	apiutil.WriteJSON(w, http.StatusOK, score)
}

// POST /api/v1/games/{id}/scores
func HandleRecordScore(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(w, r)
	if !ok {
		return
	}

	var req recordScoreRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteFieldError(w, r, "body", "must be valid JSON")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	eventID, err := service.RecordScore(ctx, gameID, req.TeamID, req.PlayerID, req.Points)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if metricsEnabled {
		metrics.IncScoreEvent(req.Points)
	}
	apiutil.WriteJSON(w, http.StatusCreated, recordScoreResponse{EventID: eventID})
}

// DELETE /api/v1/scores/{event_id}
func HandleUndoScore(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(r.PathValue("event_id"), 10, 64)
	if err != nil || eventID <= 0 {
		apiutil.WriteFieldError(w, r, "event_id", "must be a positive integer")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	if err := service.UndoScore(ctx, eventID); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if metricsEnabled {
		metrics.IncScoreUndo()
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/games/{id}/score
func HandleLiveScore(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	score, err := service.LiveScore(ctx, gameID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, score)
}

// GET /api/v1/games/{id}/scores/recent?limit=
func HandleRecentScores(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(w, r)
	if !ok {
		return
	}

	limit := int64(defaultRecentLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 || parsed > maxRecentLimit {
			apiutil.WriteFieldError(w, r, "limit", fmt.Sprintf("must be between 1 and %d", maxRecentLimit))
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	rows, err := service.RecentScores(ctx, gameID, limit)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	scores := make([]recentScore, 0, len(rows))
	for _, row := range rows {
		scores = append(scores, recentScore{
			EventID:      row.ID,
			TeamID:       row.TeamID,
			TeamName:     row.TeamName,
			PlayerID:     row.PlayerID,
			PlayerName:   row.PlayerName,
			JerseyNumber: row.JerseyNumber,
			Points:       row.Points,
			CreatedAt:    row.CreatedAt,
		})
	}
	apiutil.WriteJSON(w, http.StatusOK, scores)
}

func gameIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	gameID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || gameID <= 0 {
		apiutil.WriteFieldError(w, r, "id", "must be a positive integer")
		return 0, false
	}
	return gameID, true
}
