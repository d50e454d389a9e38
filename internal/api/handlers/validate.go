package handlers

import (
	"net/http"

	"github.com/5w1tchy/passwarden/internal/api/apperr"
	"github.com/5w1tchy/passwarden/internal/api/httpx"
	"github.com/5w1tchy/passwarden/internal/validate"
)

type validateReq struct {
	Password string          `json:"password"`
	Rules    *validate.Rules `json:"rules,omitempty"`
	Pattern  *string         `json:"pattern,omitempty"`
	StopList []string        `json:"stop_list,omitempty"`
}

type validateResp struct {
	Valid    bool  `json:"valid"`
	Rules    *bool `json:"rules,omitempty"`
	Pattern  *bool `json:"pattern,omitempty"`
	StopList *bool `json:"stop_list,omitempty"`
}

// Validate: POST /v1/validate. Only the checks present in the request run;
// valid is their conjunction.
func Validate() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in validateReq
		if !httpx.DecodeJSON(w, r, &in) || !requirePassword(w, r, "password", in.Password) {
			return
		}
		out := validateResp{Valid: true}

		if in.Rules != nil {
			ok, err := validate.ValidateRules(in.Password, *in.Rules)
			if apperr.HandleError(w, r, err) {
				return
			}
			out.Rules = &ok
			out.Valid = out.Valid && ok
		}
		if in.Pattern != nil {
			ok, err := validate.MatchesPattern(in.Password, *in.Pattern)
			if apperr.HandleError(w, r, err) {
				return
			}
			out.Pattern = &ok
			out.Valid = out.Valid && ok
		}
		if in.StopList != nil {
			ok := validate.NotInStopList(in.Password, in.StopList)
			out.StopList = &ok
			out.Valid = out.Valid && ok
		}
		httpx.OK(w, out)
	})
}
