package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/riskibarqy/prediction-league/internal/domain/leaguestanding"
	"github.com/xuri/excelize/v2"
)

const standingsSheet = "Standings"

var standingsHeader = []any{"Rank", "Participant", "Points", "Correct Results", "Odds Bonus Points"}

// StandingsExporter renders a league table as a single-sheet workbook.
type StandingsExporter struct{}

func NewStandingsExporter() *StandingsExporter {
	return &StandingsExporter{}
}

func (e *StandingsExporter) WriteStandings(w io.Writer, leagueName string, standings []leaguestanding.Standing) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", standingsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: strings.TrimSpace(leagueName) + " standings"}); err != nil {
		return fmt.Errorf("set workbook properties: %w", err)
	}

	if err := f.SetSheetRow(standingsSheet, "A1", &standingsHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetCellStyle(standingsSheet, "A1", "E1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, s := range standings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("resolve row %d: %w", i+2, err)
		}
		row := []any{s.Rank, s.DisplayName, s.Points, s.CorrectResults, s.OddsBonusPoints}
		if err := f.SetSheetRow(standingsSheet, cell, &row); err != nil {
			return fmt.Errorf("write standing %s: %w", s.ParticipantID, err)
		}
	}
	if err := f.SetColWidth(standingsSheet, "B", "B", 28); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
