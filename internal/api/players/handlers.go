// internal/api/players/handlers.go
package players

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
	"github.com/hafsaahmed614/TamkeenLeague/internal/models"
)

const playerQueryTimeout = 5 * time.Second

var queries *appdb.Queries

type createPlayerRequest struct {
	TeamID       int64  `json:"teamId"`
	Name         string `json:"name"`
	JerseyNumber int64  `json:"jerseyNumber"`
}

type updatePlayerRequest struct {
	Name         string `json:"name"`
	JerseyNumber int64  `json:"jerseyNumber"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB) {
	if database == nil {
		return
	}
	queries = database.Queries
}

// GET /api/v1/players?team_id=
func HandleListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	var (
		players []models.Player
		err     error
	)
	if raw := r.URL.Query().Get("team_id"); raw != "" {
		teamID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil || teamID <= 0 {
			apiutil.WriteFieldError(w, r, "team_id", "must be a positive integer")
			return
		}
		players, err = queries.ListPlayersByTeam(ctx, teamID)
	} else {
		players, err = queries.ListPlayers(ctx)
	}
	if err != nil {
		apiutil.WriteError(w, r, league.MapStoreError(err))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, players)
}

// POST /api/v1/players
func HandleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteFieldError(w, r, "body", "must be valid JSON")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		apiutil.WriteFieldError(w, r, "name", "is required")
		return
	}
	if req.TeamID <= 0 {
		apiutil.WriteFieldError(w, r, "teamId", "is required")
		return
	}
	if req.JerseyNumber < models.MinJerseyNumber || req.JerseyNumber > models.MaxJerseyNumber {
		apiutil.WriteFieldError(w, r, "jerseyNumber", fmt.Sprintf("must be between %d and %d",
			models.MinJerseyNumber, models.MaxJerseyNumber))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	if _, err := queries.GetTeam(ctx, req.TeamID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, fmt.Errorf("team %d: %w", req.TeamID, league.ErrNotFound))
			return
		}
		apiutil.WriteError(w, r, league.MapStoreError(err))
		return
	}

	player, err := queries.CreatePlayer(ctx, appdb.CreatePlayerParams{
		TeamID:       req.TeamID,
		Name:         name,
		JerseyNumber: req.JerseyNumber,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if appdb.IsUniqueViolation(err) {
			apiutil.WriteError(w, r, fmt.Errorf("jersey #%d is already taken on team %d: %w",
				req.JerseyNumber, req.TeamID, league.ErrConstraintViolation))
			return
		}
		apiutil.WriteError(w, r, league.MapStoreError(err))
		return
	}

	log.Ctx(r.Context()).Info().
		Int64("player_id", player.ID).
		Int64("team_id", player.TeamID).
		Str("name", player.Name).
		Msg("Player created")
	apiutil.WriteJSON(w, http.StatusCreated, player)
}

// GET /api/v1/players/{id}
func HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	player, err := queries.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, fmt.Errorf("player %d: %w", playerID, league.ErrNotFound))
			return
		}
		apiutil.WriteError(w, r, league.MapStoreError(err))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, player)
}

// PUT /api/v1/players/{id}
func HandleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerIDFromPath(w, r)
	if !ok {
		return
	}

	var req updatePlayerRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteFieldError(w, r, "body", "must be valid JSON")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		apiutil.WriteFieldError(w, r, "name", "is required")
		return
	}
	if req.JerseyNumber < models.MinJerseyNumber || req.JerseyNumber > models.MaxJerseyNumber {
		apiutil.WriteFieldError(w, r, "jerseyNumber", fmt.Sprintf("must be between %d and %d",
			models.MinJerseyNumber, models.MaxJerseyNumber))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	rows, err := queries.UpdatePlayer(ctx, appdb.UpdatePlayerParams{
		ID:           playerID,
		Name:         name,
		JerseyNumber: req.JerseyNumber,
	})
	if err != nil {
		if appdb.IsUniqueViolation(err) {
			apiutil.WriteError(w, r, fmt.Errorf("jersey #%d is already taken on this team: %w",
				req.JerseyNumber, league.ErrConstraintViolation))
			return
		}
		apiutil.WriteError(w, r, league.MapStoreError(err))
		return
	}
	if rows == 0 {
		apiutil.WriteError(w, r, fmt.Errorf("player %d: %w", playerID, league.ErrNotFound))
		return
	}

	player, err := queries.GetPlayer(ctx, playerID)
	if err != nil {
		apiutil.WriteError(w, r, league.MapStoreError(err))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, player)
}

// DELETE /api/v1/players/{id}
func HandleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	rows, err := queries.DeletePlayer(ctx, playerID)
	if err != nil {
		// Ledger entries reference the player; scoring history blocks
		// roster deletes.
		if appdb.IsConstraintViolation(err) {
			apiutil.WriteError(w, r, fmt.Errorf("player %d has recorded scores: %w",
				playerID, league.ErrConstraintViolation))
			return
		}
		apiutil.WriteError(w, r, league.MapStoreError(err))
		return
	}
	if rows == 0 {
		apiutil.WriteError(w, r, fmt.Errorf("player %d: %w", playerID, league.ErrNotFound))
		return
	}

	log.Ctx(r.Context()).Info().Int64("player_id", playerID).Msg("Player deleted")
	w.WriteHeader(http.StatusNoContent)
}

func playerIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	playerID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || playerID <= 0 {
		apiutil.WriteFieldError(w, r, "id", "must be a positive integer")
		return 0, false
	}
	return playerID, true
}
