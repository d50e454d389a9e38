package analysis

import (
	"fmt"
	"strings"

	"github.com/5w1tchy/passwarden/internal/pwerr"
)

// Grade is the discrete strength bucket derived from a score.
type Grade int

const (
	SuperWeak Grade = iota
	Weak
	Regular
	Strong
	SuperStrong
)

var gradeNames = [...]string{"SuperWeak", "Weak", "Regular", "Strong", "SuperStrong"}

func (g Grade) String() string {
	if g < SuperWeak || g > SuperStrong {
		return fmt.Sprintf("Grade(%d)", int(g))
	}
	return gradeNames[g]
}

func (g Grade) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

func (g *Grade) UnmarshalText(b []byte) error {
	for i, n := range gradeNames {
		if strings.EqualFold(n, string(b)) {
			*g = Grade(i)
			return nil
		}
	}
	return fmt.Errorf("unknown grade %q", b)
}

// MaxScore is the score of a SuperStrong password.
const MaxScore = 5

// entropy upper bounds (exclusive) for scores 1..4; anything above scores 5.
var scoreThresholds = [...]float64{28, 36, 60, 128}

// StrengthResult is the graded outcome of Strength.
type StrengthResult struct {
	Score   int     `json:"score"`
	Entropy float64 `json:"entropy"`
	Grade   Grade   `json:"grade"`
}

// ScoreFor maps entropy to a 1..5 score; the first threshold it is strictly below wins.
func ScoreFor(entropy float64) int {
	for i, limit := range scoreThresholds {
		if entropy < limit {
			return i + 1
		}
	}
	return MaxScore
}

// GradeFor maps a score to its grade. Scores above 4 are SuperStrong.
func GradeFor(score int) Grade {
	switch score {
	case 1:
		return SuperWeak
	case 2:
		return Weak
	case 3:
		return Regular
	case 4:
		return Strong
	default:
		return SuperStrong
	}
}

// Strength grades password by its entropy.
func Strength(password string) (StrengthResult, error) {
	if password == "" {
		return StrengthResult{}, pwerr.Invalid("password", "must not be empty")
	}
	e := Entropy(password)
	score := ScoreFor(e)
	return StrengthResult{Score: score, Entropy: e, Grade: GradeFor(score)}, nil
}
