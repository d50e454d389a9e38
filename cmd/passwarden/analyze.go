package main

import (
	"errors"
	"math"
	"os"

	"github.com/5w1tchy/passwarden/internal/analysis"
	"github.com/5w1tchy/passwarden/internal/bruteforce"
	"github.com/5w1tchy/passwarden/internal/validate"
	"github.com/urfave/cli/v2"
)

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Report strength, patterns and symbol frequency",
		ArgsUsage: "[password]",
		Action: func(c *cli.Context) error {
			pw, err := readSecret(c, "Password")
			if err != nil {
				return err
			}
			report, err := analysis.Analyze(pw)
			if err != nil {
				return err
			}
			return printJSON(c, report)
		},
	}
}

func similarityCommand() *cli.Command {
	return &cli.Command{
		Name:      "similarity",
		Usage:     "Score how alike two passwords are, from 0 to 1",
		ArgsUsage: "<a> <b>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.New("similarity needs exactly two arguments")
			}
			return printJSON(c, map[string]float64{
				"similarity": analysis.Similarity(c.Args().Get(0), c.Args().Get(1)),
			})
		},
	}
}

func crackTimeCommand() *cli.Command {
	var (
		flAlgorithm string
		flSpeed     float64
		flUnit      string
	)
	return &cli.Command{
		Name:      "crack-time",
		Usage:     "Estimate the worst-case brute-force time",
		ArgsUsage: "[password]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "algorithm",
				Aliases:     []string{"a"},
				Value:       string(bruteforce.SHA1),
				Destination: &flAlgorithm,
				Usage:       "hash algorithm whose cracking speed applies",
			},
			&cli.Float64Flag{
				Name:        "speed",
				Destination: &flSpeed,
				Usage:       "attempts per second; overrides --algorithm",
			},
			&cli.StringFlag{
				Name:        "unit",
				Aliases:     []string{"u"},
				Value:       "years",
				Destination: &flUnit,
				Usage:       "years, months, weeks, days, hours, minutes or seconds",
			},
		},
		Action: func(c *cli.Context) error {
			pw, err := readSecret(c, "Password")
			if err != nil {
				return err
			}
			unit, err := bruteforce.ParseTimeUnit(flUnit)
			if err != nil {
				return err
			}

			speed := flSpeed
			if speed == 0 {
				alg, err := bruteforce.ParseHashAlgorithm(flAlgorithm)
				if err != nil {
					return err
				}
				if speed, err = bruteforce.NewEstimator(bruteforce.DefaultSpeeds().Override(os.LookupEnv)).Speed(alg); err != nil {
					return err
				}
			}

			t, err := bruteforce.Estimate(pw, speed, unit)
			if err != nil {
				return err
			}
			out := map[string]any{
				"unit":                unit.String(),
				"attempts_per_second": speed,
				"combinations":        bruteforce.Combinations(pw).String(),
			}
			if math.IsInf(t, 1) {
				out["infinite"] = true
			} else {
				out["time"] = t
			}
			return printJSON(c, out)
		},
	}
}

func validateCommand() *cli.Command {
	var (
		rules     validate.Rules
		flPattern string
		flStop    cli.StringSlice
	)
	return &cli.Command{
		Name:      "validate",
		Usage:     "Check a password against a policy",
		ArgsUsage: "[password]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "min", Value: 8, Destination: &rules.MinLength, Usage: "minimum length"},
			&cli.IntFlag{Name: "max", Value: 128, Destination: &rules.MaxLength, Usage: "maximum length"},
			&cli.BoolFlag{Name: "lower", Destination: &rules.RequireLowercase, Usage: "require a lowercase letter"},
			&cli.BoolFlag{Name: "upper", Destination: &rules.RequireUppercase, Usage: "require an uppercase letter"},
			&cli.BoolFlag{Name: "digit", Destination: &rules.RequireDigit, Usage: "require a digit"},
			&cli.BoolFlag{Name: "special", Destination: &rules.RequireSpecial, Usage: "require a special character"},
			&cli.StringFlag{Name: "pattern", Destination: &flPattern, Usage: "regular expression the whole password must match"},
			&cli.StringSliceFlag{Name: "stop", Destination: &flStop, Usage: "forbidden password, repeatable"},
		},
		Action: func(c *cli.Context) error {
			pw, err := readSecret(c, "Password")
			if err != nil {
				return err
			}
			ok, err := validate.ValidateRules(pw, rules)
			if err != nil {
				return err
			}
			out := map[string]bool{
				"rules":     ok,
				"stop_list": validate.NotInStopList(pw, flStop.Value()),
			}
			if flPattern != "" {
				m, err := validate.MatchesPattern(pw, flPattern)
				if err != nil {
					return err
				}
				out["pattern"] = m
			}
			valid := true
			for _, v := range out {
				valid = valid && v
			}
			out["valid"] = valid
			return printJSON(c, out)
		},
	}
}
