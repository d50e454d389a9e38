package apperr

import (
	"encoding/json"
	"net/http"

	"github.com/5w1tchy/passwarden/internal/api/reqid"
)

// Problem is the application/problem+json body every failed request gets.
// Status and Title come from FromError or FromPG; Detail is set only for
// client-caused errors and for mirror failures with a fixed message, never
// from upstream error text. Retryable marks timeouts and transient
// breach-source failures.
type Problem struct {
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail,omitempty"`
	Instance  string `json:"instance,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

// Write fills Instance and RequestID from r and sends p. A zero Status is 500.
func Write(w http.ResponseWriter, r *http.Request, p Problem) {
	if p.Status == 0 {
		p.Status = http.StatusInternalServerError
	}
	if r != nil {
		if p.Instance == "" {
			p.Instance = r.URL.Path
		}
		if p.RequestID == "" {
			p.RequestID = reqid.FromRequest(r)
		}
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func WriteStatus(w http.ResponseWriter, r *http.Request, status int, title, detail string) {
	Write(w, r, Problem{Status: status, Title: title, Detail: detail})
}
