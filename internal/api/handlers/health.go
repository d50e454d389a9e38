package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/5w1tchy/passwarden/internal/api/httpx"
	"github.com/redis/go-redis/v9"
)

type healthResp struct {
	Status string `json:"status"`
	Redis  string `json:"redis"`
}

// Health: GET /healthz. Redis is optional, so a failed ping degrades instead of failing.
func Health(rdb *redis.Client) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		out := healthResp{Status: "ok", Redis: "off"}
		if rdb != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 300*time.Millisecond)
			defer cancel()
			if err := rdb.Ping(ctx).Err(); err != nil {
				out.Status, out.Redis = "degraded", "down"
			} else {
				out.Redis = "ok"
			}
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	})
}
