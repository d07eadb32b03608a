package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/prediction-league/internal/config"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	cliApp := &cli.App{
		Name:  "leaguectl",
		Usage: "operate prediction league storage, rule templates and standings",
		Commands: []*cli.Command{
			newMigrateCommand(),
			newRulesCommand(),
			newSeedCommand(),
			newStandingsCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadRuntime reads the service configuration and builds a logger writing to
// stderr so command output on stdout stays machine readable.
func loadRuntime() (config.Config, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := logging.NewJSONTo(os.Stderr, cfg.LogLevel)
	logging.SetDefault(logger)
	return cfg, logger, nil
}
