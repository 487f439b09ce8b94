// internal/league/leaderboard.go
package league

import (
	"context"
	"errors"
	"math"
	"sort"

	appdb "github.com/hafsaahmed614/TamkeenLeague/internal/db"
	"github.com/hafsaahmed614/TamkeenLeague/internal/models"
)

// ComputeLeaderboard derives the top scorers from the full ledger, grouped
// by (player, team). Points per game rounds to one decimal and is 0 for a
// player with no games rather than a division error. Rows sort by total
// points descending; equal totals keep first-ledger-appearance order. The
// result truncates to limit entries.
func ComputeLeaderboard(ctx context.Context, q *appdb.Queries, limit int) ([]models.LeaderboardRow, error) {
	if q == nil {
		return nil, errors.New("queries are required")
	}
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	totals, err := q.ListPlayerTotals(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]models.LeaderboardRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, models.LeaderboardRow{
			PlayerID:      t.PlayerID,
			PlayerName:    t.PlayerName,
			TeamID:        t.TeamID,
			TeamName:      t.TeamName,
			GamesPlayed:   t.GamesPlayed,
			TotalPoints:   t.TotalPoints,
			PointsPerGame: pointsPerGame(t.TotalPoints, t.GamesPlayed),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalPoints > rows[j].TotalPoints
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}

// pointsPerGame rounds to one decimal place, returning 0 when no games
// were played.
func pointsPerGame(totalPoints, gamesPlayed int64) float64 {
	if gamesPlayed <= 0 {
		return 0
	}
	return math.Round(float64(totalPoints)/float64(gamesPlayed)*10) / 10
}
