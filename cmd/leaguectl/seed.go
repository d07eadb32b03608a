package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/riskibarqy/prediction-league/internal/app"
	"github.com/riskibarqy/prediction-league/internal/config"
	"github.com/riskibarqy/prediction-league/internal/infrastructure/repository/postgres"
	"github.com/urfave/cli/v2"
)

func newSeedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "store the demo leagues when postgres holds none",
		Action: func(c *cli.Context) error {
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}
			if cfg.StorageDriver != config.StoragePostgres {
				return cli.Exit("seed needs STORAGE_DRIVER=postgres", 1)
			}
			db, err := app.OpenDB(c.Context, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			inserted, err := postgres.BootstrapSeed(c.Context, db, time.Now())
			if err != nil {
				return err
			}
			logger.Info("bootstrap seed finished", "inserted", inserted)
			fmt.Printf("inserted %d league(s)\n", inserted)
			return nil
		},
	}
}

func newStoredStandingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stored",
		Usage: "print the standings rows postgres holds for a league",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "league", Usage: "league id", Required: true},
		},
		Action: func(c *cli.Context) error {
			cfg, _, err := loadRuntime()
			if err != nil {
				return err
			}
			if cfg.StorageDriver != config.StoragePostgres {
				return cli.Exit("stored standings need STORAGE_DRIVER=postgres", 1)
			}
			db, err := app.OpenDB(c.Context, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			rows, err := postgres.NewLeagueStandingRepository(db).ListByLeague(c.Context, strings.TrimSpace(c.String("league")))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RANK\tPARTICIPANT\tNAME\tPOINTS\tCORRECT\tODDS BONUS")
			for _, s := range rows {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\n", s.Rank, s.ParticipantID, s.DisplayName, s.Points, s.CorrectResults, s.OddsBonusPoints)
			}
			return w.Flush()
		},
	}
}
