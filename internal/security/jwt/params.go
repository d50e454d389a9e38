package jwtutil

import "time"

// Config is filled from AUTH_JWT_SECRET and AUTH_CLOCK_SKEW_SEC by the config package.
type Config struct {
	Secret    []byte
	ClockSkew time.Duration
}
