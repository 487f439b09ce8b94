// internal/api/teams/handlers_test.go
package teams

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

func setupTeamsTest(t *testing.T) *appdb.DB {
	t.Helper()

	database := testutil.NewTestDB(t)
	InitHandlers(database)
	t.Cleanup(func() { queries = nil })
	return database
}

func seedTeam(t *testing.T, database *appdb.DB, name string) models.Team {
	t.Helper()

	team, err := database.Queries.CreateTeam(context.Background(), appdb.CreateTeamParams{
		Name:      name,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed team: %v", err)
	}
	return team
}

func TestHandleCreateTeam(t *testing.T) {
	setupTeamsTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams",
		strings.NewReader(`{"name": "Falcons"}`))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	HandleCreateTeam(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("status: %d, body: %s", recorder.Code, recorder.Body.String())
	}

	var team models.Team
	if err := json.Unmarshal(recorder.Body.Bytes(), &team); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if team.Name != "Falcons" {
		t.Fatalf("name: %q", team.Name)
	}
	if team.Wins != 0 || team.Losses != 0 {
		t.Fatalf("new team record should be 0-0, got %s", team.Record())
	}
}

func TestHandleCreateTeam_DuplicateName(t *testing.T) {
	database := setupTeamsTest(t)
	seedTeam(t, database, "Falcons")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams",
		strings.NewReader(`{"name": "Falcons"}`))
	recorder := httptest.NewRecorder()

	HandleCreateTeam(recorder, req)

	if recorder.Code != http.StatusConflict {
		t.Fatalf("status: %d, body: %s", recorder.Code, recorder.Body.String())
	}
}

func TestHandleCreateTeam_MissingName(t *testing.T) {
	setupTeamsTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams",
		strings.NewReader(`{"name": "   "}`))
	recorder := httptest.NewRecorder()

	HandleCreateTeam(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", recorder.Code)
	}
}

func TestHandleListTeams_SortedByName(t *testing.T) {
	database := setupTeamsTest(t)
	seedTeam(t, database, "Wolves")
	seedTeam(t, database, "Eagles")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil)
	recorder := httptest.NewRecorder()

	HandleListTeams(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status: %d", recorder.Code)
	}

	var teams []models.Team
	if err := json.Unmarshal(recorder.Body.Bytes(), &teams); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("team count: %d", len(teams))
	}
	if teams[0].Name != "Eagles" || teams[1].Name != "Wolves" {
		t.Fatalf("order: %q, %q", teams[0].Name, teams[1].Name)
	}
}

func TestHandleGetTeam_NotFound(t *testing.T) {
	setupTeamsTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/teams/999", nil)
	req.SetPathValue("id", "999")
	recorder := httptest.NewRecorder()

	HandleGetTeam(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status: %d", recorder.Code)
	}
}

func TestHandleUpdateTeam(t *testing.T) {
	database := setupTeamsTest(t)
	team := seedTeam(t, database, "Falcons")

	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/api/v1/teams/%d", team.ID),
		strings.NewReader(`{"name": "Desert Falcons"}`))
	req.SetPathValue("id", fmt.Sprint(team.ID))
	recorder := httptest.NewRecorder()

	HandleUpdateTeam(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", recorder.Code, recorder.Body.String())
	}

	var updated models.Team
	if err := json.Unmarshal(recorder.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.Name != "Desert Falcons" {
		t.Fatalf("name: %q", updated.Name)
	}
}

func TestHandleDeleteTeam(t *testing.T) {
	database := setupTeamsTest(t)
	team := seedTeam(t, database, "Falcons")

	req := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/api/v1/teams/%d", team.ID), nil)
	req.SetPathValue("id", fmt.Sprint(team.ID))
	recorder := httptest.NewRecorder()

	HandleDeleteTeam(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("status: %d, body: %s", recorder.Code, recorder.Body.String())
	}
}

func TestHandleDeleteTeam_BlockedByGames(t *testing.T) {
	database := setupTeamsTest(t)
	home := seedTeam(t, database, "Falcons")
	away := seedTeam(t, database, "Wolves")

	_, err := database.Queries.CreateGame(context.Background(), appdb.CreateGameParams{
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		StartTime:  time.Now().UTC(),
		Location:   "Court 1",
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed game: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/api/v1/teams/%d", home.ID), nil)
	req.SetPathValue("id", fmt.Sprint(home.ID))
	recorder := httptest.NewRecorder()

	HandleDeleteTeam(recorder, req)

	if recorder.Code != http.StatusConflict {
		t.Fatalf("status: %d, body: %s", recorder.Code, recorder.Body.String())
	}
}

func TestTeamIDFromPath_Invalid(t *testing.T) {
	setupTeamsTest(t)

	for _, raw := range []string{"abc", "0", "-3"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/teams/"+raw, nil)
		req.SetPathValue("id", raw)
		recorder := httptest.NewRecorder()

		HandleGetTeam(recorder, req)

		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("id %q: status %d", raw, recorder.Code)
		}
	}
}
