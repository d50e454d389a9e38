package apperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// FromPG maps a PostgreSQL error from the breach mirror to a Problem.
// Returns (Problem, true) if mapped.
func FromPG(err error) (Problem, bool) {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return Problem{}, false
	}

	p := Problem{
		Title:  "Breach database error",
		Status: http.StatusBadGateway,
	}

	switch {
	case pg.Code == "42P01": // undefined_table
		p.Status = http.StatusInternalServerError
		p.Detail = "breach mirror is not initialised"
	case pg.Code == "57014": // query_canceled (statement_timeout)
		p.Status = http.StatusGatewayTimeout
		p.Detail = "breach lookup timed out, please retry"
		p.Retryable = true
	case pg.Code == "53300", pg.Code == "57P03": // too_many_connections, cannot_connect_now
		p.Status = http.StatusServiceUnavailable
		p.Detail = "breach database busy, please retry"
		p.Retryable = true
	case strings.HasPrefix(pg.Code, "08"): // connection_exception class
		p.Status = http.StatusServiceUnavailable
		p.Detail = "breach database unavailable, please retry"
		p.Retryable = true
	}
	return p, true
}
