package main

import (
	"fmt"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/prediction-league/internal/app"
	"github.com/riskibarqy/prediction-league/internal/usecase"
	"github.com/urfave/cli/v2"
)

func newStandingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "standings",
		Usage: "rebuild and export league standings",
		Subcommands: []*cli.Command{
			{
				Name:  "rebuild",
				Usage: "recompute standings from stored breakdowns",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "league", Usage: "league id; every league when empty"},
					&cli.IntFlag{Name: "workers", Usage: "worker pool size; STANDINGS_REBUILD_WORKERS when 0"},
				},
				Action: func(c *cli.Context) error {
					cfg, logger, err := loadRuntime()
					if err != nil {
						return err
					}
					container, err := app.Build(c.Context, cfg, logger)
					if err != nil {
						return err
					}
					defer container.Close()

					result, err := container.StandingsService.RebuildStandings(c.Context, usecase.RebuildStandingsInput{
						LeagueID:   strings.TrimSpace(c.String("league")),
						MaxWorkers: c.Int("workers"),
					})
					if err != nil {
						return err
					}

					enc := sonic.ConfigStd.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					if err := enc.Encode(result); err != nil {
						return err
					}
					if result.FailedCount > 0 {
						return cli.Exit(fmt.Sprintf("%d league(s) failed to rebuild", result.FailedCount), 1)
					}
					return nil
				},
			},
			{
				Name:  "export",
				Usage: "write a league's standings to an XLSX workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "league", Usage: "league id", Required: true},
					&cli.StringFlag{Name: "out", Usage: "output file; <league>-standings.xlsx when empty"},
				},
				Action: func(c *cli.Context) error {
					cfg, logger, err := loadRuntime()
					if err != nil {
						return err
					}
					container, err := app.Build(c.Context, cfg, logger)
					if err != nil {
						return err
					}
					defer container.Close()

					leagueID := strings.TrimSpace(c.String("league"))
					out := strings.TrimSpace(c.String("out"))
					if out == "" {
						out = leagueID + "-standings.xlsx"
					}

					f, err := os.Create(out)
					if err != nil {
						return fmt.Errorf("create %s: %w", out, err)
					}
					if err := container.StandingsService.ExportStandings(c.Context, leagueID, f); err != nil {
						_ = f.Close()
						_ = os.Remove(out)
						return err
					}
					if err := f.Close(); err != nil {
						return fmt.Errorf("close %s: %w", out, err)
					}

					fmt.Println(out)
					return nil
				},
			},
			newStoredStandingsCommand(),
		},
	}
}
