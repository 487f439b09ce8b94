// internal/api/rankings/handlers.go
package rankings

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/hafsaahmed614/TamkeenLeague/internal/api/apiutil"
	"github.com/hafsaahmed614/TamkeenLeague/internal/league"
)

const rankingsQueryTimeout = 10 * time.Second

var (
	service      *league.Service
	defaultLimit int
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *league.Service, leaderboardLimit int) {
	service = svc
	defaultLimit = leaderboardLimit
}

// GET /api/v1/rankings/standings
func HandleStandings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), rankingsQueryTimeout)
	defer cancel()

	rows, err := service.Standings(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, rows)
}

// GET /api/v1/rankings/leaderboard?limit=
func HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > defaultLimit {
			apiutil.WriteFieldError(w, r, "limit", fmt.Sprintf("must be between 1 and %d", defaultLimit))
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), rankingsQueryTimeout)
	defer cancel()

	rows, err := service.Leaderboard(ctx, limit)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, rows)
}
