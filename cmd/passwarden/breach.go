package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/5w1tchy/passwarden/internal/breach"
	"github.com/5w1tchy/passwarden/internal/repository/sqlconnect"
	"github.com/urfave/cli/v2"
)

type counter interface {
	Count(ctx context.Context, pw string) (int, error)
}

func pwnedCommand() *cli.Command {
	return &cli.Command{
		Name:      "pwned",
		Usage:     "Check a password against the configured breach sources",
		ArgsUsage: "[password]",
		UsageText: `
passwarden pwned [password]

Only the first five characters of the password's SHA-1 leave the machine.`,
		Action: func(c *cli.Context) error {
			pw, err := readSecret(c, "Password")
			if err != nil {
				return err
			}
			app, err := appFromCLI(c)
			if err != nil {
				return err
			}
			defer app.Close()
			if app.Breach == nil {
				return errors.New("no breach source configured")
			}

			if counter, ok := app.Breach.(counter); ok {
				n, err := counter.Count(c.Context, pw)
				if err != nil {
					return err
				}
				return printJSON(c, map[string]any{"compromised": n > 0, "count": n})
			}
			hit, err := app.Breach.IsCompromised(c.Context, pw)
			if err != nil {
				return err
			}
			return printJSON(c, map[string]any{"compromised": hit})
		},
	}
}

func importBreachCommand() *cli.Command {
	return &cli.Command{
		Name:      "import-breach",
		Usage:     "Load a HASH[:COUNT] corpus into the BREACH_DATABASE_URL mirror",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("import-breach needs exactly one file")
			}
			dsn := os.Getenv("BREACH_DATABASE_URL")
			if dsn == "" {
				return errors.New("BREACH_DATABASE_URL is not set")
			}
			f, err := os.Open(c.Args().First())
			if err != nil {
				return err
			}
			defer f.Close()

			db, err := sqlconnect.ConnectDB(c.Context, dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := breach.ImportSQL(c.Context, db, f)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.App.Writer, "imported %d hashes\n", n)
			return err
		},
	}
}
