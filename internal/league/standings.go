// internal/league/standings.go
package league

import (
	"context"
	"errors"
	"sort"

	appdb "github.com/hafsaahmed614/TamkeenLeague/internal/db"
	"github.com/hafsaahmed614/TamkeenLeague/internal/models"
)

// ComputeStandings derives the league table from the persisted team records
// and the scoring ledger. Points-for accrues from every ledger entry as
// scored, live games included; points-against accrues only from finalized
// games, each side charged the opponent's total. Rows sort by wins
// descending, then point differential descending; remaining ties keep team
// name order (the input order), and ranks are 1-based with no sharing.
func ComputeStandings(ctx context.Context, q *appdb.Queries) ([]models.StandingsRow, error) {
	if q == nil {
		return nil, errors.New("queries are required")
	}

	teams, err := q.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]models.StandingsRow, 0, len(teams))
	index := make(map[int64]int, len(teams))
	for _, team := range teams {
		index[team.ID] = len(rows)
		rows = append(rows, models.StandingsRow{
			TeamID:   team.ID,
			TeamName: team.Name,
			Wins:     team.Wins,
			Losses:   team.Losses,
		})
	}

	pointsFor, err := q.SumPointsByTeam(ctx)
	if err != nil {
		return nil, err
	}
	for _, pf := range pointsFor {
		if i, ok := index[pf.TeamID]; ok {
			rows[i].PointsFor = pf.Points
		}
	}

	finals, err := q.ListFinalGameTotals(ctx)
	if err != nil {
		return nil, err
	}
	for _, game := range finals {
		if i, ok := index[game.HomeTeamID]; ok {
			rows[i].PointsAgainst += game.AwayPoints
		}
		if i, ok := index[game.AwayTeamID]; ok {
			rows[i].PointsAgainst += game.HomePoints
		}
	}

	for i := range rows {
		rows[i].PointDiff = rows[i].PointsFor - rows[i].PointsAgainst
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		return rows[i].PointDiff > rows[j].PointDiff
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}
