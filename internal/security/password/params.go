package password

import (
	"os"
	"strconv"
)

type Params struct {
	Memory      uint32 // kibibytes
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

func loadEnvUint32(key string, def uint32) uint32 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			return uint32(n)
		}
	}
	return def
}

func loadEnvUint8(key string, def uint8) uint8 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 8); err == nil {
			return uint8(n)
		}
	}
	return def
}

// DefaultParams is ~128MB, t=3.
func DefaultParams() Params {
	return Params{
		Memory:      131072, // 128 MiB
		Iterations:  3,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// LoadParamsFromEnv adjusts DefaultParams by ARGON2_MEMORY/ITER/PAR without code changes.
func LoadParamsFromEnv() Params {
	d := DefaultParams()
	d.Memory = loadEnvUint32("ARGON2_MEMORY", d.Memory)
	d.Iterations = loadEnvUint32("ARGON2_ITER", d.Iterations)
	d.Parallelism = loadEnvUint8("ARGON2_PAR", d.Parallelism)
	return d
}
