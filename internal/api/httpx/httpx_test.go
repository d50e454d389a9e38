package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type payload struct {
	Password string `json:"password"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		body string
		ok   bool
		code int
	}{
		{`{"password":"x"}`, true, 0},
		{``, false, http.StatusBadRequest},
		{`{"password":1}`, false, http.StatusBadRequest},
		{`{"password":"x","extra":true}`, false, http.StatusBadRequest},
		{`{"password":"x"} {"password":"y"}`, false, http.StatusBadRequest},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
		rec := httptest.NewRecorder()
		var p payload
		if got := DecodeJSON(rec, req, &p); got != tt.ok {
			t.Errorf("DecodeJSON(%q) = %v, want %v", tt.body, got, tt.ok)
			continue
		}
		if !tt.ok && rec.Code != tt.code {
			t.Errorf("DecodeJSON(%q) status = %d, want %d", tt.body, rec.Code, tt.code)
		}
	}
}

func TestDecodeJSONTooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"password":"`+strings.Repeat("a", 100)+`"}`))
	req.Body = http.MaxBytesReader(rec, req.Body, 16)
	var p payload
	if DecodeJSON(rec, req, &p) {
		t.Fatal("expected failure")
	}
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]int{"n": 1})
	var env struct {
		Status string         `json:"status"`
		Data   map[string]int `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	if env.Status != "success" || env.Data["n"] != 1 {
		t.Fatalf("envelope = %+v", env)
	}
}
