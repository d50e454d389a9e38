// Package handlers exposes the analysis and generation packages over JSON.
// Every handler decodes one request object and answers with the success
// envelope or an RFC 7807 problem.
package handlers

import (
	"net/http"

	"github.com/5w1tchy/passwarden/internal/api/apperr"
	"github.com/5w1tchy/passwarden/internal/validate"
)

// MaxPasswordLen bounds every password or phrase accepted over HTTP.
const MaxPasswordLen = 1024

func requirePassword(w http.ResponseWriter, r *http.Request, name, pw string) bool {
	return !apperr.HandleError(w, r, validate.RequirePassword(name, pw, MaxPasswordLen))
}
