package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func newRulesCommand() *cli.Command {
	return &cli.Command{
		Name:  "rules",
		Usage: "inspect and validate scoring rule templates",
		Subcommands: []*cli.Command{
			{
				Name:  "templates",
				Usage: "print the built-in templates as YAML",
				Action: func(_ *cli.Context) error {
					byName := make(map[string]scoring.RuleSet)
					for _, t := range scoring.Templates() {
						byName[t.Name] = t.Rules
					}
					enc := yaml.NewEncoder(os.Stdout)
					enc.SetIndent(2)
					defer enc.Close()
					return enc.Encode(byName)
				},
			},
			{
				Name:  "ranges",
				Usage: "print the accepted range of every rule value",
				Action: func(_ *cli.Context) error {
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "FIELD\tMIN\tMAX")
					for _, r := range scoring.Ranges() {
						fmt.Fprintf(w, "%s\t%d\t%d\n", r.Field, r.Min, r.Max)
					}
					return w.Flush()
				},
			},
			{
				Name:      "validate",
				Usage:     "validate a YAML file of named rule sets",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						return cli.Exit("a template file is required", 2)
					}
					raw, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("read %s: %w", path, err)
					}
					templates, err := scoring.ParseTemplates(raw)
					if err != nil {
						return err
					}
					for _, t := range templates {
						fmt.Printf("%s: ok (max odds bonus %d)\n", t.Name, t.Rules.MaxOddsBonus())
					}
					return nil
				},
			},
		},
	}
}
