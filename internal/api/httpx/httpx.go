package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/5w1tchy/passwarden/internal/api/apperr"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, map[string]any{"status": "success", "data": data})
}

// DecodeJSON reads exactly one JSON object into dst. On failure it writes a
// problem response and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err == nil {
		// trailing garbage after the object
		if dec.Decode(&struct{}{}) != io.EOF {
			err = errors.New("body must contain a single JSON object")
		}
	}
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		apperr.WriteStatus(w, r, http.StatusRequestEntityTooLarge, "Request Entity Too Large", "")
	case errors.Is(err, io.EOF):
		apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "request body is empty")
	default:
		apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "invalid JSON: "+err.Error())
	}
	return false
}
