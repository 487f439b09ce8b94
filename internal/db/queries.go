// internal/db/queries.go
package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/hafsaahmed614/TamkeenLeague/internal/models"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same query layer
// serves plain reads and transactional writes.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

// ---- teams ----

type CreateTeamParams struct {
	Name      string
	CreatedAt time.Time
}

func (q *Queries) CreateTeam(ctx context.Context, arg CreateTeamParams) (models.Team, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO teams (name, created_at)
		VALUES (?, ?)
		RETURNING id, name, wins, losses, created_at`,
		arg.Name, arg.CreatedAt,
	)
	return scanTeam(row)
}

func (q *Queries) GetTeam(ctx context.Context, id int64) (models.Team, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, name, wins, losses, created_at
		FROM teams WHERE id = ?`, id,
	)
	return scanTeam(row)
}

func (q *Queries) ListTeams(ctx context.Context) ([]models.Team, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, name, wins, losses, created_at
		FROM teams ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Wins, &t.Losses, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

type UpdateTeamNameParams struct {
	ID   int64
	Name string
}

func (q *Queries) UpdateTeamName(ctx context.Context, arg UpdateTeamNameParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE teams SET name = ? WHERE id = ?`, arg.Name, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) DeleteTeam(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountGamesForTeam counts games referencing the team on either side. Team
// deletion is rejected while this is non-zero.
func (q *Queries) CountGamesForTeam(ctx context.Context, teamID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM games
		WHERE home_team_id = ? OR away_team_id = ?`, teamID, teamID,
	).Scan(&count)
	return count, err
}

func (q *Queries) IncrementTeamWins(ctx context.Context, teamID int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE teams SET wins = wins + 1 WHERE id = ?`, teamID)
	return err
}

func (q *Queries) IncrementTeamLosses(ctx context.Context, teamID int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE teams SET losses = losses + 1 WHERE id = ?`, teamID)
	return err
}

// ---- players ----

type CreatePlayerParams struct {
	TeamID       int64
	Name         string
	JerseyNumber int64
	CreatedAt    time.Time
}

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) (models.Player, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO players (team_id, name, jersey_number, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id, team_id, name, jersey_number, created_at`,
		arg.TeamID, arg.Name, arg.JerseyNumber, arg.CreatedAt,
	)
	return scanPlayer(row)
}

func (q *Queries) GetPlayer(ctx context.Context, id int64) (models.Player, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, team_id, name, jersey_number, created_at
		FROM players WHERE id = ?`, id,
	)
	return scanPlayer(row)
}

func (q *Queries) ListPlayers(ctx context.Context) ([]models.Player, error) {
	return q.queryPlayers(ctx, `
		SELECT id, team_id, name, jersey_number, created_at
		FROM players ORDER BY name`)
}

func (q *Queries) ListPlayersByTeam(ctx context.Context, teamID int64) ([]models.Player, error) {
	return q.queryPlayers(ctx, `
		SELECT id, team_id, name, jersey_number, created_at
		FROM players WHERE team_id = ? ORDER BY jersey_number`, teamID)
}

type UpdatePlayerParams struct {
	ID           int64
	Name         string
	JerseyNumber int64
}

func (q *Queries) UpdatePlayer(ctx context.Context, arg UpdatePlayerParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE players SET name = ?, jersey_number = ? WHERE id = ?`,
		arg.Name, arg.JerseyNumber, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) DeletePlayer(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) queryPlayers(ctx context.Context, query string, args ...any) ([]models.Player, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.TeamID, &p.Name, &p.JerseyNumber, &p.CreatedAt); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// ---- games ----

type CreateGameParams struct {
	HomeTeamID int64
	AwayTeamID int64
	StartTime  time.Time
	Location   string
	CreatedAt  time.Time
}

func (q *Queries) CreateGame(ctx context.Context, arg CreateGameParams) (models.Game, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO games (home_team_id, away_team_id, start_time, location, status, created_at)
		VALUES (?, ?, ?, ?, 'scheduled', ?)
		RETURNING id, home_team_id, away_team_id, start_time, location, status, created_at`,
		arg.HomeTeamID, arg.AwayTeamID, arg.StartTime, arg.Location, arg.CreatedAt,
	)
	return scanGame(row)
}

func (q *Queries) GetGame(ctx context.Context, id int64) (models.Game, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, home_team_id, away_team_id, start_time, location, status, created_at
		FROM games WHERE id = ?`, id,
	)
	return scanGame(row)
}

func (q *Queries) ListGames(ctx context.Context) ([]models.Game, error) {
	return q.queryGames(ctx, `
		SELECT id, home_team_id, away_team_id, start_time, location, status, created_at
		FROM games ORDER BY start_time DESC`)
}

func (q *Queries) ListGamesByStatus(ctx context.Context, status models.GameStatus) ([]models.Game, error) {
	return q.queryGames(ctx, `
		SELECT id, home_team_id, away_team_id, start_time, location, status, created_at
		FROM games WHERE status = ? ORDER BY start_time`, string(status))
}

// TransitionGameStatus flips the game's status only if it currently holds
// the expected value. The returned count is 0 when the game is missing or
// the compare-and-set lost; callers distinguish the two with GetGame.
type TransitionGameStatusParams struct {
	ID   int64
	From models.GameStatus
	To   models.GameStatus
}

func (q *Queries) TransitionGameStatus(ctx context.Context, arg TransitionGameStatusParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE games SET status = ? WHERE id = ? AND status = ?`,
		string(arg.To), arg.ID, string(arg.From))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) DeleteGame(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) queryGames(ctx context.Context, query string, args ...any) ([]models.Game, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var g models.Game
		var status string
		if err := rows.Scan(&g.ID, &g.HomeTeamID, &g.AwayTeamID, &g.StartTime, &g.Location, &status, &g.CreatedAt); err != nil {
			return nil, err
		}
		g.Status = models.GameStatus(status)
		games = append(games, g)
	}
	return games, rows.Err()
}

// ---- score events ----

type InsertScoreEventParams struct {
	GameID    int64
	TeamID    int64
	PlayerID  int64
	Points    int64
	CreatedAt time.Time
}

func (q *Queries) InsertScoreEvent(ctx context.Context, arg InsertScoreEventParams) (models.ScoreEvent, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO score_events (game_id, team_id, player_id, points, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, game_id, team_id, player_id, points, created_at`,
		arg.GameID, arg.TeamID, arg.PlayerID, arg.Points, arg.CreatedAt,
	)
	var e models.ScoreEvent
	err := row.Scan(&e.ID, &e.GameID, &e.TeamID, &e.PlayerID, &e.Points, &e.CreatedAt)
	return e, err
}

func (q *Queries) GetScoreEvent(ctx context.Context, id int64) (models.ScoreEvent, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, game_id, team_id, player_id, points, created_at
		FROM score_events WHERE id = ?`, id,
	)
	var e models.ScoreEvent
	err := row.Scan(&e.ID, &e.GameID, &e.TeamID, &e.PlayerID, &e.Points, &e.CreatedAt)
	return e, err
}

func (q *Queries) DeleteScoreEvent(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM score_events WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SumTeamPoints totals one team's ledger entries within one game.
type SumTeamPointsParams struct {
	GameID int64
	TeamID int64
}

func (q *Queries) SumTeamPoints(ctx context.Context, arg SumTeamPointsParams) (int64, error) {
	var total int64
	err := q.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(points), 0) FROM score_events
		WHERE game_id = ? AND team_id = ?`,
		arg.GameID, arg.TeamID,
	).Scan(&total)
	return total, err
}

type RecentScoreRow struct {
	ID           int64
	GameID       int64
	TeamID       int64
	PlayerID     int64
	Points       int64
	CreatedAt    time.Time
	PlayerName   string
	JerseyNumber int64
	TeamName     string
}

type ListRecentScoreEventsParams struct {
	GameID int64
	Limit  int64
}

// ListRecentScoreEvents returns the newest ledger entries for a game with
// player and team names attached, newest first. This backs the scorer's
// undo list.
func (q *Queries) ListRecentScoreEvents(ctx context.Context, arg ListRecentScoreEventsParams) ([]RecentScoreRow, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT se.id, se.game_id, se.team_id, se.player_id, se.points, se.created_at,
		       p.name, p.jersey_number, t.name
		FROM score_events se
		JOIN players p ON p.id = se.player_id
		JOIN teams t ON t.id = se.team_id
		WHERE se.game_id = ?
		ORDER BY se.created_at DESC, se.id DESC
		LIMIT ?`,
		arg.GameID, arg.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []RecentScoreRow
	for rows.Next() {
		var r RecentScoreRow
		if err := rows.Scan(&r.ID, &r.GameID, &r.TeamID, &r.PlayerID, &r.Points, &r.CreatedAt,
			&r.PlayerName, &r.JerseyNumber, &r.TeamName); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// ---- derived aggregates ----

type TeamPointsRow struct {
	TeamID int64
	Points int64
}

// SumPointsByTeam totals every team's ledger entries across all games,
// regardless of game status. Points-for accrues as scored.
func (q *Queries) SumPointsByTeam(ctx context.Context) ([]TeamPointsRow, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT team_id, COALESCE(SUM(points), 0)
		FROM score_events GROUP BY team_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TeamPointsRow
	for rows.Next() {
		var r TeamPointsRow
		if err := rows.Scan(&r.TeamID, &r.Points); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

type FinalGameTotalsRow struct {
	GameID     int64
	HomeTeamID int64
	AwayTeamID int64
	HomePoints int64
	AwayPoints int64
}

// ListFinalGameTotals returns per-side ledger totals for every final game.
// Points-against is derived from these rows only; live games contribute
// nothing until finalized.
func (q *Queries) ListFinalGameTotals(ctx context.Context) ([]FinalGameTotalsRow, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT g.id, g.home_team_id, g.away_team_id,
		       COALESCE(SUM(CASE WHEN se.team_id = g.home_team_id THEN se.points END), 0),
		       COALESCE(SUM(CASE WHEN se.team_id = g.away_team_id THEN se.points END), 0)
		FROM games g
		LEFT JOIN score_events se ON se.game_id = g.id
		WHERE g.status = 'final'
		GROUP BY g.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []FinalGameTotalsRow
	for rows.Next() {
		var r FinalGameTotalsRow
		if err := rows.Scan(&r.GameID, &r.HomeTeamID, &r.AwayTeamID, &r.HomePoints, &r.AwayPoints); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

type PlayerTotalsRow struct {
	PlayerID    int64
	PlayerName  string
	TeamID      int64
	TeamName    string
	GamesPlayed int64
	TotalPoints int64
}

// ListPlayerTotals aggregates the full ledger by (player, team). Rows are
// ordered by first ledger appearance so equal totals keep input order after
// the engine's stable sort.
func (q *Queries) ListPlayerTotals(ctx context.Context) ([]PlayerTotalsRow, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT se.player_id, p.name, se.team_id, t.name,
		       COUNT(DISTINCT se.game_id), COALESCE(SUM(se.points), 0)
		FROM score_events se
		JOIN players p ON p.id = se.player_id
		JOIN teams t ON t.id = se.team_id
		GROUP BY se.player_id, se.team_id
		ORDER BY MIN(se.id)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PlayerTotalsRow
	for rows.Next() {
		var r PlayerTotalsRow
		if err := rows.Scan(&r.PlayerID, &r.PlayerName, &r.TeamID, &r.TeamName, &r.GamesPlayed, &r.TotalPoints); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// ---- row scanners ----

func scanTeam(row *sql.Row) (models.Team, error) {
	var t models.Team
	err := row.Scan(&t.ID, &t.Name, &t.Wins, &t.Losses, &t.CreatedAt)
	return t, err
}

func scanPlayer(row *sql.Row) (models.Player, error) {
	var p models.Player
	err := row.Scan(&p.ID, &p.TeamID, &p.Name, &p.JerseyNumber, &p.CreatedAt)
	return p, err
}

func scanGame(row *sql.Row) (models.Game, error) {
	var g models.Game
	var status string
	err := row.Scan(&g.ID, &g.HomeTeamID, &g.AwayTeamID, &g.StartTime, &g.Location, &status, &g.CreatedAt)
	g.Status = models.GameStatus(status)
	return g, err
}
