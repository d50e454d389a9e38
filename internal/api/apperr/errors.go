package apperr

import (
	"context"
	"errors"
	"net/http"

	"github.com/5w1tchy/passwarden/internal/pwerr"
)

// StatusClientClosedRequest is nginx's code for a client that went away.
const StatusClientClosedRequest = 499

// FromError maps the domain error taxonomy to a Problem.
func FromError(err error) Problem {
	switch {
	case errors.Is(err, pwerr.ErrInvalidArgument):
		return Problem{Status: http.StatusBadRequest, Title: "Bad Request", Detail: err.Error()}
	case errors.Is(err, pwerr.ErrUnconfigured):
		return Problem{Status: http.StatusUnprocessableEntity, Title: "Unprocessable Entity", Detail: err.Error()}
	case errors.Is(err, context.Canceled):
		return Problem{Status: StatusClientClosedRequest, Title: "Client Closed Request"}
	case errors.Is(err, context.DeadlineExceeded):
		return Problem{Status: http.StatusServiceUnavailable, Title: "Timed Out", Retryable: true}
	case errors.Is(err, pwerr.ErrBreachLookup):
		if p, ok := FromPG(err); ok {
			return p
		}
		// upstream detail may include URLs and addresses; keep it out of responses
		return Problem{Status: http.StatusBadGateway, Title: "Breach lookup failed", Retryable: true}
	default:
		return Problem{Status: http.StatusInternalServerError, Title: "Internal Server Error"}
	}
}

// HandleError writes err as a Problem. Returns true if err was non-nil.
func HandleError(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil {
		return false
	}
	Write(w, r, FromError(err))
	return true
}
