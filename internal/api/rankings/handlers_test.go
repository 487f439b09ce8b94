// internal/api/rankings/handlers_test.go
package rankings

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appdb "github.com/hafsaahmed614/TamkeenLeague/internal/db"
	"github.com/hafsaahmed614/TamkeenLeague/internal/league"
	"github.com/hafsaahmed614/TamkeenLeague/internal/models"
	"github.com/hafsaahmed614/TamkeenLeague/internal/testutil"
)

func setupRankingsTest(t *testing.T, leaderboardLimit int) *league.Service {
	t.Helper()

	database := testutil.NewTestDB(t)
	svc := league.NewService(database, 0)
	InitHandlers(svc, leaderboardLimit)
	t.Cleanup(func() { service = nil })

	ctx := context.Background()
	now := time.Now().UTC()

	falcons, err := database.Queries.CreateTeam(ctx, appdb.CreateTeamParams{Name: "Falcons", CreatedAt: now})
	if err != nil {
		t.Fatalf("seed team: %v", err)
	}
	wolves, err := database.Queries.CreateTeam(ctx, appdb.CreateTeamParams{Name: "Wolves", CreatedAt: now})
	if err != nil {
		t.Fatalf("seed team: %v", err)
	}
	sara, err := database.Queries.CreatePlayer(ctx, appdb.CreatePlayerParams{
		TeamID: falcons.ID, Name: "Sara", JerseyNumber: 23, CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed player: %v", err)
	}
	nadia, err := database.Queries.CreatePlayer(ctx, appdb.CreatePlayerParams{
		TeamID: wolves.ID, Name: "Nadia", JerseyNumber: 7, CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed player: %v", err)
	}

	game, err := database.Queries.CreateGame(ctx, appdb.CreateGameParams{
		HomeTeamID: falcons.ID,
		AwayTeamID: wolves.ID,
		StartTime:  now,
		Location:   "Court 1",
		CreatedAt:  now,
	})
	if err != nil {
		t.Fatalf("seed game: %v", err)
	}
	if err := svc.StartGame(ctx, game.ID); err != nil {
		t.Fatalf("start game: %v", err)
	}
	if _, err := svc.RecordScore(ctx, game.ID, falcons.ID, sara.ID, 3); err != nil {
		t.Fatalf("record score: %v", err)
	}
	if _, err := svc.RecordScore(ctx, game.ID, falcons.ID, sara.ID, 2); err != nil {
		t.Fatalf("record score: %v", err)
	}
	if _, err := svc.RecordScore(ctx, game.ID, wolves.ID, nadia.ID, 2); err != nil {
		t.Fatalf("record score: %v", err)
	}
	if _, err := svc.FinalizeGame(ctx, game.ID); err != nil {
		t.Fatalf("finalize game: %v", err)
	}

	return svc
}

func TestHandleStandings(t *testing.T) {
	setupRankingsTest(t, 15)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rankings/standings", nil)
	recorder := httptest.NewRecorder()

	HandleStandings(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", recorder.Code, recorder.Body.String())
	}

	var rows []models.StandingsRow
	if err := json.Unmarshal(recorder.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count: %d", len(rows))
	}
	if rows[0].TeamName != "Falcons" || rows[0].Wins != 1 || rows[0].Rank != 1 {
		t.Fatalf("leader: %+v", rows[0])
	}
	if rows[1].TeamName != "Wolves" || rows[1].Losses != 1 || rows[1].Rank != 2 {
		t.Fatalf("runner-up: %+v", rows[1])
	}
	if rows[0].PointsFor != 5 || rows[0].PointsAgainst != 2 || rows[0].PointDiff != 3 {
		t.Fatalf("leader aggregates: %+v", rows[0])
	}
}

func TestHandleLeaderboard(t *testing.T) {
	setupRankingsTest(t, 15)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rankings/leaderboard", nil)
	recorder := httptest.NewRecorder()

	HandleLeaderboard(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", recorder.Code, recorder.Body.String())
	}

	var rows []models.LeaderboardRow
	if err := json.Unmarshal(recorder.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count: %d", len(rows))
	}
	if rows[0].PlayerName != "Sara" || rows[0].TotalPoints != 5 || rows[0].PointsPerGame != 5.0 {
		t.Fatalf("top scorer: %+v", rows[0])
	}
}

func TestHandleLeaderboard_CustomLimit(t *testing.T) {
	setupRankingsTest(t, 15)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rankings/leaderboard?limit=1", nil)
	recorder := httptest.NewRecorder()

	HandleLeaderboard(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status: %d", recorder.Code)
	}

	var rows []models.LeaderboardRow
	if err := json.Unmarshal(recorder.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(rows) != 1 || rows[0].PlayerName != "Sara" {
		t.Fatalf("rows: %+v", rows)
	}
}

func TestHandleLeaderboard_LimitAboveDefaultRejected(t *testing.T) {
	setupRankingsTest(t, 15)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rankings/leaderboard?limit=50", nil)
	recorder := httptest.NewRecorder()

	HandleLeaderboard(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", recorder.Code)
	}
}
