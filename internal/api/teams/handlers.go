// internal/api/teams/handlers.go
package teams

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
)

const teamQueryTimeout = 5 * time.Second

var queries *appdb.Queries

type teamRequest struct {
	Name string `json:"name"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB) {
	if database == nil {
		return
	}
	queries = database.Queries
}

// GET /api/v1/teams
func HandleListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	teams, err := queries.ListTeams(ctx)
	if err != nil {
		apiutil.WriteError(w, r, league.MapStoreError(err))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, teams)
}

// POST /api/v1/teams
func HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteFieldError(w, r, "body", "must be valid JSON")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		apiutil.WriteFieldError(w, r, "name", "is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	team, err := queries.CreateTeam(ctx, appdb.CreateTeamParams{
		Name:      name,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if appdb.IsUniqueViolation(err) {
			apiutil.WriteError(w, r, fmt.Errorf("team name %q is already taken: %w", name, league.ErrConstraintViolation))
			return
		}
		apiutil.WriteError(w, r, league.MapStoreError(err))
		return
	}

	log.Ctx(r.Context()).Info().Int64("team_id", team.ID).Str("name", team.Name).Msg("Team created")
	apiutil.WriteJSON(w, http.StatusCreated, team)
}

// GET /api/v1/teams/{id}
func HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := teamIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	team, err := queries.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, fmt.Errorf("team %d: %w", teamID, league.ErrNotFound))
			return
		}
		apiutil.WriteError(w, r, league.MapStoreError(err))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, team)
}

// PUT /api/v1/teams/{id}
func HandleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := teamIDFromPath(w, r)
	if !ok {
		return
	}

	var req teamRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteFieldError(w, r, "body", "must be valid JSON")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		apiutil.WriteFieldError(w, r, "name", "is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	rows, err := queries.UpdateTeamName(ctx, appdb.UpdateTeamNameParams{ID: teamID, Name: name})
	if err != nil {
		if appdb.IsUniqueViolation(err) {
			apiutil.WriteError(w, r, fmt.Errorf("team name %q is already taken: %w", name, league.ErrConstraintViolation))
			return
		}
		apiutil.WriteError(w, r, league.MapStoreError(err))
		return
	}
	if rows == 0 {
		apiutil.WriteError(w, r, fmt.Errorf("team %d: %w", teamID, league.ErrNotFound))
		return
	}

	team, err := queries.GetTeam(ctx, teamID)
	if err != nil {
		apiutil.WriteError(w, r, league.MapStoreError(err))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, team)
}

// DELETE /api/v1/teams/{id}
func HandleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := teamIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	// Refuse to delete a team that still has games; game history must be
	// removed explicitly, game by game.
	games, err := queries.CountGamesForTeam(ctx, teamID)
	if err != nil {
		apiutil.WriteError(w, r, league.MapStoreError(err))
		return
	}
	if games > 0 {
		apiutil.WriteError(w, r, fmt.Errorf("team %d still has %d scheduled or played games: %w",
			teamID, games, league.ErrConstraintViolation))
		return
	}

	rows, err := queries.DeleteTeam(ctx, teamID)
	if err != nil {
		apiutil.WriteError(w, r, league.MapStoreError(err))
		return
	}
	if rows == 0 {
		apiutil.WriteError(w, r, fmt.Errorf("team %d: %w", teamID, league.ErrNotFound))
		return
	}

	log.Ctx(r.Context()).Info().Int64("team_id", teamID).Msg("Team deleted")
	w.WriteHeader(http.StatusNoContent)
}

func teamIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	teamID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || teamID <= 0 {
		apiutil.WriteFieldError(w, r, "id", "must be a positive integer")
		return 0, false
	}
	return teamID, true
}
