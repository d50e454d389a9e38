package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/5w1tchy/passwarden/internal/bootstrap"
	"github.com/5w1tchy/passwarden/internal/config"
	"github.com/5w1tchy/passwarden/internal/logging"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "passwarden:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "passwarden",
		Usage: "analyze, generate, breach-check and hash passwords",
		UsageText: `
passwarden <command> [options] [password]

Commands that take a password read it from the argument, or prompt for it
when none is given, so it stays out of shell history.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "dotenv file loaded before the environment is read",
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "error",
				Usage:   "zap level for diagnostics on stderr",
			},
		},
		Before: func(c *cli.Context) error {
			_ = godotenv.Load(c.String("env-file"))
			return nil
		},
		Commands: []*cli.Command{
			analyzeCommand(),
			similarityCommand(),
			crackTimeCommand(),
			validateCommand(),
			pwnedCommand(),
			importBreachCommand(),
			generateCommand(),
			hashCommand(),
			verifyCommand(),
			tokenCommand(),
		},
	}
}

// appFromCLI loads configuration and connects the backends it names.
// Callers must Close the result.
func appFromCLI(c *cli.Context) (*bootstrap.App, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.AppEnv, c.String("log-level"))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return bootstrap.Build(c.Context, cfg, log)
}

// readSecret returns the first argument, or prompts without echo on a
// terminal, or reads one line from a pipe.
func readSecret(c *cli.Context, prompt string) (string, error) {
	if c.Args().Present() {
		return c.Args().First(), nil
	}
	if f, ok := c.App.Reader.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(c.App.ErrWriter, prompt+": ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.App.ErrWriter)
		if err != nil {
			return "", fmt.Errorf("error reading %s: %w", strings.ToLower(prompt), err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(c.App.Reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("no " + strings.ToLower(prompt) + " given")
	}
	return line, nil
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
