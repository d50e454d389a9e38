package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/5w1tchy/passwarden/internal/security/password"
	"github.com/urfave/cli/v2"
)

var errMismatch = errors.New("password does not match")

func hasherFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "algorithm",
		Aliases:     []string{"a"},
		EnvVars:     []string{"HASHER"},
		Value:       "argon2id",
		Destination: dst,
		Usage:       "argon2id, bcrypt or sha1",
	}
}

func hashCommand() *cli.Command {
	var flAlgorithm string
	return &cli.Command{
		Name:      "hash",
		Usage:     "Hash a password for storage",
		ArgsUsage: "[password]",
		Flags:     []cli.Flag{hasherFlag(&flAlgorithm)},
		Action: func(c *cli.Context) error {
			h, err := password.New(flAlgorithm, password.LoadParamsFromEnv())
			if err != nil {
				return err
			}
			pw, err := readSecret(c, "Password")
			if err != nil {
				return err
			}
			out, err := h.Hash(pw)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, out)
			return err
		},
	}
}

func verifyCommand() *cli.Command {
	var flAlgorithm, flHash string
	return &cli.Command{
		Name:      "verify",
		Usage:     "Check a password against a stored hash",
		ArgsUsage: "[password]",
		Flags: []cli.Flag{
			hasherFlag(&flAlgorithm),
			&cli.StringFlag{Name: "hash", Required: true, Destination: &flHash, Usage: "stored hash"},
		},
		Action: func(c *cli.Context) error {
			h, err := password.New(flAlgorithm, password.LoadParamsFromEnv())
			if err != nil {
				return err
			}
			pw, err := readSecret(c, "Password")
			if err != nil {
				return err
			}
			ok, err := h.Verify(pw, flHash)
			if err != nil {
				return fmt.Errorf("invalid hash: %w", err)
			}
			if !ok {
				return errMismatch
			}
			_, err = fmt.Fprintln(c.App.Writer, "match")
			return err
		},
	}
}

func tokenCommand() *cli.Command {
	var (
		flClient string
		flScope  string
		flTTL    time.Duration
	)
	return &cli.Command{
		Name:  "token",
		Usage: "Mint an API client token signed with AUTH_JWT_SECRET",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "client", Required: true, Destination: &flClient, Usage: "client id (token subject)"},
			&cli.StringFlag{Name: "scope", Destination: &flScope, Usage: `space separated scopes, e.g. "generate hash"; empty grants all`},
			&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour, Destination: &flTTL, Usage: "token lifetime"},
		},
		Action: func(c *cli.Context) error {
			app, err := appFromCLI(c)
			if err != nil {
				return err
			}
			defer app.Close()
			if app.Signer == nil {
				return errors.New("AUTH_JWT_SECRET is not set")
			}
			tok, _, err := app.Signer.Sign(flClient, flScope, flTTL)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, tok)
			return err
		},
	}
}
