// internal/api/players/handlers_test.go
package players

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appdb "github.com/hafsaahmed614/TamkeenLeague/internal/db"
	"github.com/hafsaahmed614/TamkeenLeague/internal/models"
	"github.com/hafsaahmed614/TamkeenLeague/internal/testutil"
)

func setupPlayersTest(t *testing.T) (*appdb.DB, models.Team) {
	t.Helper()

	database := testutil.NewTestDB(t)
	InitHandlers(database)
	t.Cleanup(func() { queries = nil })

	team, err := database.Queries.CreateTeam(context.Background(), appdb.CreateTeamParams{
		Name:      "Falcons",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed team: %v", err)
	}
	return database, team
}

func seedPlayer(t *testing.T, database *appdb.DB, teamID int64, name string, jersey int64) models.Player {
	t.Helper()

	player, err := database.Queries.CreatePlayer(context.Background(), appdb.CreatePlayerParams{
		TeamID:       teamID,
		Name:         name,
		JerseyNumber: jersey,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed player: %v", err)
	}
	return player
}

func TestHandleCreatePlayer(t *testing.T) {
	_, team := setupPlayersTest(t)

	payload := fmt.Sprintf(`{"teamId": %d, "name": "Sara", "jerseyNumber": 23}`, team.ID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/players", strings.NewReader(payload))
	recorder := httptest.NewRecorder()

	HandleCreatePlayer(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("status: %d, body: %s", recorder.Code, recorder.Body.String())
	}

	var player models.Player
	if err := json.Unmarshal(recorder.Body.Bytes(), &player); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if player.TeamID != team.ID || player.Name != "Sara" || player.JerseyNumber != 23 {
		t.Fatalf("player: %+v", player)
	}
}

func TestHandleCreatePlayer_UnknownTeam(t *testing.T) {
	setupPlayersTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/players",
		strings.NewReader(`{"teamId": 999, "name": "Sara", "jerseyNumber": 23}`))
	recorder := httptest.NewRecorder()

	HandleCreatePlayer(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status: %d, body: %s", recorder.Code, recorder.Body.String())
	}
}

func TestHandleCreatePlayer_JerseyOutOfRange(t *testing.T) {
	_, team := setupPlayersTest(t)

	for _, jersey := range []int64{-1, 100} {
		payload := fmt.Sprintf(`{"teamId": %d, "name": "Sara", "jerseyNumber": %d}`, team.ID, jersey)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/players", strings.NewReader(payload))
		recorder := httptest.NewRecorder()

		HandleCreatePlayer(recorder, req)

		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("jersey %d: status %d", jersey, recorder.Code)
		}
	}
}

func TestHandleCreatePlayer_DuplicateJersey(t *testing.T) {
	database, team := setupPlayersTest(t)
	seedPlayer(t, database, team.ID, "Sara", 23)

	payload := fmt.Sprintf(`{"teamId": %d, "name": "Nadia", "jerseyNumber": 23}`, team.ID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/players", strings.NewReader(payload))
	recorder := httptest.NewRecorder()

	HandleCreatePlayer(recorder, req)

	if recorder.Code != http.StatusConflict {
		t.Fatalf("status: %d, body: %s", recorder.Code, recorder.Body.String())
	}
}

func TestHandleListPlayers_FilterByTeam(t *testing.T) {
	database, team := setupPlayersTest(t)
	other, err := database.Queries.CreateTeam(context.Background(), appdb.CreateTeamParams{
		Name:      "Wolves",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed team: %v", err)
	}
	seedPlayer(t, database, team.ID, "Sara", 23)
	seedPlayer(t, database, other.ID, "Nadia", 7)

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/players?team_id=%d", team.ID), nil)
	recorder := httptest.NewRecorder()

	HandleListPlayers(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status: %d", recorder.Code)
	}

	var roster []models.Player
	if err := json.Unmarshal(recorder.Body.Bytes(), &roster); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(roster) != 1 || roster[0].Name != "Sara" {
		t.Fatalf("roster: %+v", roster)
	}
}

func TestHandleUpdatePlayer(t *testing.T) {
	database, team := setupPlayersTest(t)
	player := seedPlayer(t, database, team.ID, "Sara", 23)

	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/api/v1/players/%d", player.ID),
		strings.NewReader(`{"name": "Sara A.", "jerseyNumber": 8}`))
	req.SetPathValue("id", fmt.Sprint(player.ID))
	recorder := httptest.NewRecorder()

	HandleUpdatePlayer(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", recorder.Code, recorder.Body.String())
	}

	var updated models.Player
	if err := json.Unmarshal(recorder.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.Name != "Sara A." || updated.JerseyNumber != 8 {
		t.Fatalf("player: %+v", updated)
	}
}

func TestHandleDeletePlayer_NotFound(t *testing.T) {
	setupPlayersTest(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/players/999", nil)
	req.SetPathValue("id", "999")
	recorder := httptest.NewRecorder()

	HandleDeletePlayer(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status: %d", recorder.Code)
	}
}

func TestHandleDeletePlayer_BlockedByScores(t *testing.T) {
	database, team := setupPlayersTest(t)
	other, err := database.Queries.CreateTeam(context.Background(), appdb.CreateTeamParams{
		Name:      "Wolves",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed team: %v", err)
	}
	player := seedPlayer(t, database, team.ID, "Sara", 23)

	ctx := context.Background()
	game, err := database.Queries.CreateGame(ctx, appdb.CreateGameParams{
		HomeTeamID: team.ID,
		AwayTeamID: other.ID,
		StartTime:  time.Now().UTC(),
		Location:   "Court 1",
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed game: %v", err)
	}
	if _, err := database.Queries.InsertScoreEvent(ctx, appdb.InsertScoreEventParams{
		GameID:    game.ID,
		TeamID:    team.ID,
		PlayerID:  player.ID,
		Points:    2,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed score event: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/api/v1/players/%d", player.ID), nil)
	req.SetPathValue("id", fmt.Sprint(player.ID))
	recorder := httptest.NewRecorder()

	HandleDeletePlayer(recorder, req)

	if recorder.Code != http.StatusConflict {
		t.Fatalf("status: %d, body: %s", recorder.Code, recorder.Body.String())
	}
}
