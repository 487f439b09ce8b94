// internal/models/models.go
package models

import (
	"fmt"
	"time"
)

// GameStatus is the lifecycle state of a game. Transitions only move
// forward: scheduled -> live -> final.
type GameStatus string

const (
	GameScheduled GameStatus = "scheduled"
	GameLive      GameStatus = "live"
	GameFinal     GameStatus = "final"
)

func (s GameStatus) Valid() bool {
	switch s {
	case GameScheduled, GameLive, GameFinal:
		return true
	}
	return false
}

const (
	MinPointValue = 1
	MaxPointValue = 3

	MinJerseyNumber = 0
	MaxJerseyNumber = 99
)

// ValidPointValue reports whether points is a legal basketball scoring
// value (free throw, field goal, or three-pointer).
func ValidPointValue(points int64) bool {
	return points >= MinPointValue && points <= MaxPointValue
}

type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Wins      int64     `json:"wins"`
	Losses    int64     `json:"losses"`
	CreatedAt time.Time `json:"createdAt"`
}

// Record formats the team's win-loss record, e.g. "3-1".
func (t Team) Record() string {
	return fmt.Sprintf("%d-%d", t.Wins, t.Losses)
}

type Player struct {
	ID           int64     `json:"id"`
	TeamID       int64     `json:"teamId"`
	Name         string    `json:"name"`
	JerseyNumber int64     `json:"jerseyNumber"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Game struct {
	ID         int64      `json:"id"`
	HomeTeamID int64      `json:"homeTeamId"`
	AwayTeamID int64      `json:"awayTeamId"`
	StartTime  time.Time  `json:"startTime"`
	Location   string     `json:"location"`
	Status     GameStatus `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// HasTeam reports whether teamID is one of the game's two sides.
func (g Game) HasTeam(teamID int64) bool {
	return teamID == g.HomeTeamID || teamID == g.AwayTeamID
}

// Opponent returns the other side of the game. The caller must have
// checked HasTeam first.
func (g Game) Opponent(teamID int64) int64 {
	if teamID == g.HomeTeamID {
		return g.AwayTeamID
	}
	return g.HomeTeamID
}

// ScoreEvent is one entry of the append-only scoring ledger. Entries are
// immutable once written; deletion (undo) is the only correction mechanism.
type ScoreEvent struct {
	ID        int64     `json:"id"`
	GameID    int64     `json:"gameId"`
	TeamID    int64     `json:"teamId"`
	PlayerID  int64     `json:"playerId"`
	Points    int64     `json:"points"`
	CreatedAt time.Time `json:"createdAt"`
}

// GameScore is the pair of per-side totals derived from the ledger.
type GameScore struct {
	HomeScore int64 `json:"homeScore"`
	AwayScore int64 `json:"awayScore"`
}

// StandingsRow is a derived, never-persisted league table entry.
type StandingsRow struct {
	Rank          int    `json:"rank"`
	TeamID        int64  `json:"teamId"`
	TeamName      string `json:"teamName"`
	Wins          int64  `json:"wins"`
	Losses        int64  `json:"losses"`
	PointsFor     int64  `json:"pointsFor"`
	PointsAgainst int64  `json:"pointsAgainst"`
	PointDiff     int64  `json:"pointDiff"`
}

// LeaderboardRow is a derived per-player scoring summary.
type LeaderboardRow struct {
	Rank          int     `json:"rank"`
	PlayerID      int64   `json:"playerId"`
	PlayerName    string  `json:"playerName"`
	TeamID        int64   `json:"teamId"`
	TeamName      string  `json:"teamName"`
	GamesPlayed   int64   `json:"gamesPlayed"`
	TotalPoints   int64   `json:"totalPoints"`
	PointsPerGame float64 `json:"pointsPerGame"`
}
