package apiutil

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/hafsaahmed614/TamkeenLeague/internal/league"
)

type errorResponse struct {
	Error string `json:"error"`
}

// WriteError maps a league error onto its HTTP status and writes a JSON
// body with the specific message. Unrecognized errors become opaque 500s;
// the detail goes to the log, not the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Internal Server Error"

	switch {
	case errors.Is(err, league.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, league.ErrInvalidTransition):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, league.ErrInvalidScoreEntry):
		status = http.StatusUnprocessableEntity
		message = err.Error()
	case errors.Is(err, league.ErrConstraintViolation):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, league.ErrUnavailable):
		status = http.StatusServiceUnavailable
		message = "Storage temporarily unavailable, retry the request"
	default:
		log.Ctx(r.Context()).Error().Err(err).Msg("Unhandled error in request")
	}

	if writeErr := WriteJSON(w, status, errorResponse{Error: message}); writeErr != nil {
		log.Ctx(r.Context()).Error().Err(writeErr).Msg("Failed to write error response")
	}
}

// WriteFieldError reports a request validation failure as a 400 with the
// offending field named.
func WriteFieldError(w http.ResponseWriter, r *http.Request, field, reason string) {
	err := FieldError{Field: field, Reason: reason}
	if writeErr := WriteJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()}); writeErr != nil {
		log.Ctx(r.Context()).Error().Err(writeErr).Msg("Failed to write error response")
	}
}
