package bruteforce

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

//go:embed speeds.json
var defaultSpeeds []byte

// SpeedTable maps a hash algorithm to guesses per second.
type SpeedTable map[HashAlgorithm]float64

// DefaultSpeeds returns the built-in table (single high-end GPU figures).
func DefaultSpeeds() SpeedTable {
	t, err := LoadSpeeds(strings.NewReader(string(defaultSpeeds)))
	if err != nil {
		panic("bruteforce: embedded speeds.json: " + err.Error())
	}
	return t
}

// LoadSpeeds decodes a JSON object of algorithm name to attempts per second.
// Names are canonicalised through ParseHashAlgorithm; unknown names are errors.
func LoadSpeeds(r io.Reader) (SpeedTable, error) {
	var raw map[string]float64
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode speed table: %w", err)
	}
	t := make(SpeedTable, len(raw))
	for name, v := range raw {
		alg, err := ParseHashAlgorithm(name)
		if err != nil {
			return nil, err
		}
		if !(v > 0) {
			return nil, fmt.Errorf("speed for %s must be > 0, got %v", alg, v)
		}
		t[alg] = v
	}
	return t, nil
}

// LoadSpeedFile reads a speed table from path.
func LoadSpeedFile(path string) (SpeedTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open speed table: %w", err)
	}
	defer f.Close()
	return LoadSpeeds(f)
}

// Override returns a copy of t where each algorithm with a parseable positive
// value under lookup("CRACK_SPEED_<NAME>") is replaced.
func (t SpeedTable) Override(lookup func(string) (string, bool)) SpeedTable {
	out := make(SpeedTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	for _, alg := range Algorithms {
		raw, ok := lookup("CRACK_SPEED_" + strings.ToUpper(string(alg)))
		if !ok {
			continue
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && v > 0 {
			out[alg] = v
		}
	}
	return out
}
