// internal/league/service.go
package league

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	appdb "github.com/hafsaahmed614/TamkeenLeague/internal/db"
	"github.com/hafsaahmed614/TamkeenLeague/internal/models"
)

// Service owns the scoring ledger and the game lifecycle. All derived views
// (live score, standings, leaderboard) recompute from the ledger on read;
// the team win/loss counters are the one piece of mutable derived state,
// written exactly once when a game is finalized.
type Service struct {
	db    *appdb.DB
	cache *LiveScoreCache
	now   func() time.Time
}

func NewService(database *appdb.DB, cacheTTL time.Duration) *Service {
	return &Service{
		db:    database,
		cache: NewLiveScoreCache(cacheTTL, nil),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Cache exposes the live-score cache for the background sweep job.
func (s *Service) Cache() *LiveScoreCache {
	return s.cache
}

// StartGame moves a scheduled game to live, enabling score entry. The
// status flip is a compare-and-set so a game never starts twice.
func (s *Service) StartGame(ctx context.Context, gameID int64) error {
	rows, err := s.db.Queries.TransitionGameStatus(ctx, appdb.TransitionGameStatusParams{
		ID:   gameID,
		From: models.GameScheduled,
		To:   models.GameLive,
	})
	if err != nil {
		return MapStoreError(err)
	}
	if rows == 0 {
		game, err := s.db.Queries.GetGame(ctx, gameID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("game %d: %w", gameID, ErrNotFound)
			}
			return MapStoreError(err)
		}
		return fmt.Errorf("cannot start game %d with status %q: %w", gameID, game.Status, ErrInvalidTransition)
	}

	log.Ctx(ctx).Info().Int64("game_id", gameID).Msg("Game started")
	return nil
}

// FinalizeGame moves a live game to final and settles the team records.
// The status compare-and-set, the ledger sums, and the win/loss counter
// updates happen inside one transaction: either everything commits or
// nothing does. A concurrent finalize loses the CAS and fails with
// ErrInvalidTransition before touching any counter. Tie scores finalize
// with no record change.
func (s *Service) FinalizeGame(ctx context.Context, gameID int64) (models.GameScore, error) {
	var score models.GameScore

	err := s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		game, err := tx.Queries.GetGame(ctx, gameID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("game %d: %w", gameID, ErrNotFound)
			}
			return err
		}

		rows, err := tx.Queries.TransitionGameStatus(ctx, appdb.TransitionGameStatusParams{
			ID:   gameID,
			From: models.GameLive,
			To:   models.GameFinal,
		})
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("cannot finalize game %d with status %q: %w", gameID, game.Status, ErrInvalidTransition)
		}

		score.HomeScore, err = tx.Queries.SumTeamPoints(ctx, appdb.SumTeamPointsParams{
			GameID: gameID,
			TeamID: game.HomeTeamID,
		})
		if err != nil {
			return err
		}
		score.AwayScore, err = tx.Queries.SumTeamPoints(ctx, appdb.SumTeamPointsParams{
			GameID: gameID,
			TeamID: game.AwayTeamID,
		})
		if err != nil {
			return err
		}

		// A tie finalizes with no win/loss effect.
		if score.HomeScore != score.AwayScore {
			winner := game.HomeTeamID
			if score.AwayScore > score.HomeScore {
				winner = game.AwayTeamID
			}
			if err := tx.Queries.IncrementTeamWins(ctx, winner); err != nil {
				return err
			}
			if err := tx.Queries.IncrementTeamLosses(ctx, game.Opponent(winner)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return models.GameScore{}, MapStoreError(err)
	}

	s.cache.Invalidate(gameID)
	log.Ctx(ctx).Info().
		Int64("game_id", gameID).
		Int64("home_score", score.HomeScore).
		Int64("away_score", score.AwayScore).
		Msg("Game finalized")
	return score, nil
}

// RecordScore appends one immutable entry to the scoring ledger. The game
// must be live, the team must be one of the game's sides, the player must
// belong to that team, and points must be 1, 2, or 3. Concurrent appends
// are independent inserts and need no mutual exclusion.
func (s *Service) RecordScore(ctx context.Context, gameID, teamID, playerID, points int64) (int64, error) {
	if !models.ValidPointValue(points) {
		return 0, fmt.Errorf("points must be between %d and %d, got %d: %w",
			models.MinPointValue, models.MaxPointValue, points, ErrInvalidScoreEntry)
	}

	game, err := s.db.Queries.GetGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("game %d: %w", gameID, ErrNotFound)
		}
		return 0, MapStoreError(err)
	}
	if game.Status != models.GameLive {
		return 0, fmt.Errorf("game %d has status %q, scores can only be recorded while live: %w",
			gameID, game.Status, ErrInvalidScoreEntry)
	}
	if !game.HasTeam(teamID) {
		return 0, fmt.Errorf("team %d is not playing in game %d: %w", teamID, gameID, ErrInvalidScoreEntry)
	}

	player, err := s.db.Queries.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("player %d does not exist: %w", playerID, ErrInvalidScoreEntry)
		}
		return 0, MapStoreError(err)
	}
	if player.TeamID != teamID {
		return 0, fmt.Errorf("player %d is not on team %d: %w", playerID, teamID, ErrInvalidScoreEntry)
	}

	event, err := s.db.Queries.InsertScoreEvent(ctx, appdb.InsertScoreEventParams{
		GameID:    gameID,
		TeamID:    teamID,
		PlayerID:  playerID,
		Points:    points,
		CreatedAt: s.now(),
	})
	if err != nil {
		return 0, MapStoreError(err)
	}

	s.cache.Invalidate(gameID)
	log.Ctx(ctx).Info().
		Int64("game_id", gameID).
		Int64("team_id", teamID).
		Int64("player_id", playerID).
		Int64("points", points).
		Int64("event_id", event.ID).
		Msg("Score recorded")
	return event.ID, nil
}

// UndoScore removes exactly one ledger entry by identity. This is the only
// supported correction mechanism; there is no edit. Undo on an entry of a
// final game is permitted as an administrative correction but does not
// revisit that game's win/loss settlement.
func (s *Service) UndoScore(ctx context.Context, eventID int64) error {
	event, err := s.db.Queries.GetScoreEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("score event %d: %w", eventID, ErrNotFound)
		}
		return MapStoreError(err)
	}

	rows, err := s.db.Queries.DeleteScoreEvent(ctx, eventID)
	if err != nil {
		return MapStoreError(err)
	}
	if rows == 0 {
		return fmt.Errorf("score event %d: %w", eventID, ErrNotFound)
	}

	s.cache.Invalidate(event.GameID)
	log.Ctx(ctx).Info().
		Int64("event_id", eventID).
		Int64("game_id", event.GameID).
		Msg("Score undone")
	return nil
}

// LiveScore derives both sides' current totals from the ledger. Repeated
// reads within the cache TTL may be served from the cache; any write for
// the game evicts its entry first.
func (s *Service) LiveScore(ctx context.Context, gameID int64) (models.GameScore, error) {
	if score, ok := s.cache.Get(gameID); ok {
		return score, nil
	}

	game, err := s.db.Queries.GetGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.GameScore{}, fmt.Errorf("game %d: %w", gameID, ErrNotFound)
		}
		return models.GameScore{}, MapStoreError(err)
	}

	var score models.GameScore
	score.HomeScore, err = s.db.Queries.SumTeamPoints(ctx, appdb.SumTeamPointsParams{
		GameID: gameID,
		TeamID: game.HomeTeamID,
	})
	if err != nil {
		return models.GameScore{}, MapStoreError(err)
	}
	score.AwayScore, err = s.db.Queries.SumTeamPoints(ctx, appdb.SumTeamPointsParams{
		GameID: gameID,
		TeamID: game.AwayTeamID,
	})
	if err != nil {
		return models.GameScore{}, MapStoreError(err)
	}

	s.cache.Set(gameID, score)
	return score, nil
}

// RecentScores lists the newest ledger entries for a game, newest first,
// with player and team names for display. This backs the scorer's undo
// list.
func (s *Service) RecentScores(ctx context.Context, gameID int64, limit int64) ([]appdb.RecentScoreRow, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Queries.ListRecentScoreEvents(ctx, appdb.ListRecentScoreEventsParams{
		GameID: gameID,
		Limit:  limit,
	})
	if err != nil {
		return nil, MapStoreError(err)
	}
	return rows, nil
}

// DeleteGame hard-deletes a game and, by cascade, every ledger entry it
// owns. This is an administrative override outside the state machine; the
// record counters of already-settled games are intentionally untouched.
func (s *Service) DeleteGame(ctx context.Context, gameID int64) error {
	rows, err := s.db.Queries.DeleteGame(ctx, gameID)
	if err != nil {
		return MapStoreError(err)
	}
	if rows == 0 {
		return fmt.Errorf("game %d: %w", gameID, ErrNotFound)
	}

	s.cache.Invalidate(gameID)
	log.Ctx(ctx).Info().Int64("game_id", gameID).Msg("Game deleted with its ledger entries")
	return nil
}

// Standings recomputes the full league table from the team records and the
// ledger. Nothing is cached or persisted.
func (s *Service) Standings(ctx context.Context) ([]models.StandingsRow, error) {
	rows, err := ComputeStandings(ctx, s.db.Queries)
	if err != nil {
		return nil, MapStoreError(err)
	}
	return rows, nil
}

// Leaderboard recomputes the top scorers from the full ledger. A
// non-positive limit falls back to the configured default at the caller.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardRow, error) {
	rows, err := ComputeLeaderboard(ctx, s.db.Queries, limit)
	if err != nil {
		return nil, MapStoreError(err)
	}
	return rows, nil
}

