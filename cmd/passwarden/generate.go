package main

import (
	"fmt"

	"github.com/5w1tchy/passwarden/internal/generator"
	"github.com/5w1tchy/passwarden/internal/naming"
	"github.com/urfave/cli/v2"
)

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Generate passwords",
		Subcommands: []*cli.Command{
			generateRulesCommand(),
			generateRandomCommand(),
			generatePhraseCommand(),
			generateMnemonicCommand(),
		},
	}
}

func generateRulesCommand() *cli.Command {
	var rules generator.GenerationRules
	return &cli.Command{
		Name:  "rules",
		Usage: "Exact counts per character class",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "lower", Value: 4, Destination: &rules.Lowercase},
			&cli.IntFlag{Name: "upper", Value: 4, Destination: &rules.Uppercase},
			&cli.IntFlag{Name: "digits", Value: 4, Destination: &rules.Digits},
			&cli.IntFlag{Name: "special", Value: 4, Destination: &rules.Special},
		},
		Action: func(c *cli.Context) error {
			pw, err := generator.New().Generate(rules)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, pw)
			return err
		},
	}
}

func generateRandomCommand() *cli.Command {
	return &cli.Command{
		Name:  "random",
		Usage: "Strong random password that no breach source knows",
		Action: func(c *cli.Context) error {
			app, err := appFromCLI(c)
			if err != nil {
				return err
			}
			defer app.Close()
			pw, err := app.Generator.GenerateReliableRandom(c.Context)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, pw)
			return err
		},
	}
}

func generatePhraseCommand() *cli.Command {
	return &cli.Command{
		Name:      "phrase",
		Usage:     "Obfuscate a memorable word by substituting its letters",
		ArgsUsage: "<word>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("phrase needs exactly one argument")
			}
			pw, err := generator.New().GenerateFromPhrase(c.Args().First())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, pw)
			return err
		},
	}
}

func generateMnemonicCommand() *cli.Command {
	var flConvention string
	return &cli.Command{
		Name:  "mnemonic",
		Usage: "Adjective, noun, verb and adverb joined by a naming convention",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "convention",
				Aliases:     []string{"c"},
				Value:       "camel",
				Destination: &flConvention,
				Usage:       "camel, pascal, snake, kebab, ...",
			},
		},
		Action: func(c *cli.Context) error {
			conv, err := naming.Parse(flConvention)
			if err != nil {
				return err
			}
			app, err := appFromCLI(c)
			if err != nil {
				return err
			}
			defer app.Close()
			pw, err := app.Generator.GenerateMnemonic(c.Context, conv)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, pw)
			return err
		},
	}
}
