// internal/league/errors.go
package league

import (
	"database/sql"
	"errors"
	"fmt"

	appdb "github.com/hafsaahmed614/TamkeenLeague/internal/db"
)

// Sentinel errors for the scoring core. Handlers map these onto HTTP
// statuses; everything here is recoverable and carries enough context for a
// specific client-facing message.
var (
	// ErrInvalidTransition marks an illegal lifecycle move, such as
	// finalizing a game that is not live.
	ErrInvalidTransition = errors.New("invalid game transition")

	// ErrInvalidScoreEntry marks a rejected ledger append: game not live,
	// team not in the game, player not on the team, or a bad point value.
	ErrInvalidScoreEntry = errors.New("invalid score entry")

	// ErrNotFound marks a missing entity by identity.
	ErrNotFound = errors.New("not found")

	// ErrConstraintViolation marks a uniqueness or referential integrity
	// failure, such as a duplicate team name or jersey number.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrUnavailable marks a transient storage failure. The failed
	// operation had no partial effects and is safe to retry.
	ErrUnavailable = errors.New("storage unavailable")
)

// MapStoreError folds storage failures into the taxonomy above. Errors
// already in the taxonomy pass through untouched; anything unrecognized is
// returned as-is for logging upstream.
func MapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrInvalidScoreEntry),
		errors.Is(err, ErrConstraintViolation),
		errors.Is(err, ErrUnavailable):
		return err
	case appdb.IsBusy(err):
		return fmt.Errorf("%v: %w", err, ErrUnavailable)
	case appdb.IsConstraintViolation(err):
		return fmt.Errorf("%v: %w", err, ErrConstraintViolation)
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%v: %w", err, ErrNotFound)
	default:
		return err
	}
}
