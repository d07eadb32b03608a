package postgres

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/prediction-league/internal/domain/chip"
	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/gameweek"
	"github.com/riskibarqy/prediction-league/internal/domain/league"
	"github.com/riskibarqy/prediction-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/prediction-league/internal/domain/player"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
)

// leagueDocument is the JSONB payload stored next to the indexed league
// columns. Field names are part of the stored format.
type leagueDocument struct {
	RuleSet         ruleSetDocument    `json:"ruleSet"`
	RuleSetTemplate string             `json:"ruleSetTemplate,omitempty"`
	ChipAllowance   allowanceDocument  `json:"chipAllowance"`
	Participants    []participantDoc   `json:"participants"`
	GameWeeks       []gameWeekDocument `json:"gameWeeks"`
	Chips           []chipDocument     `json:"chips"`
	Standings       []standingDocument `json:"standings"`
}

type ruleSetDocument struct {
	CorrectOutcome              int `json:"correctOutcome"`
	CorrectResult               int `json:"correctResult"`
	CorrectGoalDifference       int `json:"correctGoalDifference"`
	CorrectGoalsByTeam          int `json:"correctGoalsByTeam"`
	CorrectGoalScorerDefender   int `json:"correctGoalScorerDefender"`
	CorrectGoalScorerMidfielder int `json:"correctGoalScorerMidfielder"`
	CorrectGoalScorerForward    int `json:"correctGoalScorerForward"`
	FirstTeamToScore            int `json:"firstTeamToScore"`
	GoalFest                    int `json:"goalFest"`
	UnderdogBonus               int `json:"underdogBonus"`
	OddsBonus3To4               int `json:"oddsBonus3To4"`
	OddsBonus4To6               int `json:"oddsBonus4To6"`
	OddsBonus6To10              int `json:"oddsBonus6To10"`
	OddsBonus10Plus             int `json:"oddsBonus10Plus"`
}

type allowanceDocument struct {
	RiskTaker  int `json:"riskTaker"`
	DoubleUp   int `json:"doubleUp"`
	GoalFest   int `json:"goalFest"`
	CleanSweep int `json:"cleanSweep"`
}

type participantDoc struct {
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	JoinedAt    time.Time `json:"joinedAt"`
}

type gameWeekDocument struct {
	Round            int                  `json:"round"`
	StartsAt         time.Time            `json:"startsAt"`
	Deadline         time.Time            `json:"deadline"`
	Fixtures         []fixtureDocument    `json:"fixtures"`
	Predictions      []predictionDocument `json:"predictions"`
	HasBeenCorrected bool                 `json:"hasBeenCorrected"`
	HasEnded         bool                 `json:"hasEnded"`
	ForceEnded       bool                 `json:"forceEnded"`
	CorrectedAt      *time.Time           `json:"correctedAt,omitempty"`
	EndedAt          *time.Time           `json:"endedAt,omitempty"`
}

type fixtureDocument struct {
	ID                      string          `json:"id"`
	HomeTeam                string          `json:"homeTeam"`
	AwayTeam                string          `json:"awayTeam"`
	KickoffAt               time.Time       `json:"kickoffAt"`
	ShouldPredictGoalScorer bool            `json:"shouldPredictGoalScorer"`
	GoalScorerFromTeam      string          `json:"goalScorerFromTeam,omitempty"`
	OddsHome                float64         `json:"oddsHome"`
	OddsDraw                float64         `json:"oddsDraw"`
	OddsAway                float64         `json:"oddsAway"`
	FinalResult             *resultDocument `json:"finalResult,omitempty"`
	CorrectedAt             *time.Time      `json:"correctedAt,omitempty"`
}

type resultDocument struct {
	HomeGoals        int                `json:"homeGoals"`
	AwayGoals        int                `json:"awayGoals"`
	GoalScorers      []string           `json:"goalScorers,omitempty"`
	FirstTeamToScore string             `json:"firstTeamToScore,omitempty"`
	Aggregate        *aggregateDocument `json:"aggregate,omitempty"`
}

type aggregateDocument struct {
	HomeGoals int `json:"homeGoals"`
	AwayGoals int `json:"awayGoals"`
}

type predictionDocument struct {
	ParticipantID    string             `json:"participantId"`
	FixtureID        string             `json:"fixtureId"`
	HomeGoals        *int               `json:"homeGoals,omitempty"`
	AwayGoals        *int               `json:"awayGoals,omitempty"`
	GoalScorer       *scorerDocument    `json:"goalScorer,omitempty"`
	FirstTeamToScore string             `json:"firstTeamToScore,omitempty"`
	SubmittedAt      time.Time          `json:"submittedAt"`
	Points           *breakdownDocument `json:"points,omitempty"`
}

type scorerDocument struct {
	PlayerID string `json:"playerId,omitempty"`
	Name     string `json:"name"`
	Team     string `json:"team,omitempty"`
	Position string `json:"position"`
}

type breakdownDocument struct {
	CorrectOutcome        int      `json:"correctOutcome"`
	CorrectGoalsByTeam    int      `json:"correctGoalsByTeam"`
	CorrectGoalDifference int      `json:"correctGoalDifference"`
	CorrectResult         int      `json:"correctResult"`
	CorrectGoalScorer     int      `json:"correctGoalScorer"`
	OddsBonus             int      `json:"oddsBonus"`
	FirstTeamToScore      int      `json:"firstTeamToScore"`
	GoalFest              int      `json:"goalFest"`
	UnderdogBonus         int      `json:"underdogBonus"`
	ChipBonus             int      `json:"chipBonus"`
	Chips                 []string `json:"chips,omitempty"`
	OutcomeCorrect        bool     `json:"outcomeCorrect"`
	Total                 int      `json:"total"`
}

type chipDocument struct {
	ParticipantID string    `json:"participantId"`
	Kind          string    `json:"kind"`
	Round         int       `json:"round"`
	Scope         string    `json:"scope"`
	FixtureID     string    `json:"fixtureId,omitempty"`
	AssignedAt    time.Time `json:"assignedAt"`
}

type standingDocument struct {
	ParticipantID   string `json:"participantId"`
	DisplayName     string `json:"displayName"`
	Points          int    `json:"points"`
	CorrectResults  int    `json:"correctResults"`
	OddsBonusPoints int    `json:"oddsBonusPoints"`
	Rank            int    `json:"rank"`
}

func encodeLeagueDocument(item league.League) (string, error) {
	doc := leagueDocument{
		RuleSet:         ruleSetDocument(item.RuleSet),
		RuleSetTemplate: item.RuleSetTemplate,
		ChipAllowance:   allowanceDocument(item.ChipAllowance),
		Participants:    make([]participantDoc, 0, len(item.Participants)),
		GameWeeks:       make([]gameWeekDocument, 0, len(item.GameWeeks)),
		Chips:           make([]chipDocument, 0, len(item.Chips)),
		Standings:       make([]standingDocument, 0, len(item.Standings)),
	}
	for _, p := range item.Participants {
		doc.Participants = append(doc.Participants, participantDoc(p))
	}
	for _, g := range item.GameWeeks {
		doc.GameWeeks = append(doc.GameWeeks, gameWeekToDocument(g))
	}
	for _, c := range item.Chips {
		doc.Chips = append(doc.Chips, chipDocument{
			ParticipantID: c.ParticipantID,
			Kind:          string(c.Kind),
			Round:         c.Round,
			Scope:         string(c.Scope),
			FixtureID:     c.FixtureID,
			AssignedAt:    c.AssignedAt,
		})
	}
	for _, s := range item.Standings {
		doc.Standings = append(doc.Standings, standingDocument(s))
	}

	raw, err := sonic.MarshalString(doc)
	if err != nil {
		return "", fmt.Errorf("encode league document: %w", err)
	}
	return raw, nil
}

func leagueFromRow(row leagueTableModel) (league.League, error) {
	var doc leagueDocument
	if len(row.Document) > 0 {
		if err := sonic.Unmarshal(row.Document, &doc); err != nil {
			return league.League{}, fmt.Errorf("decode league document %s: %w", row.PublicID, err)
		}
	}

	out := league.League{
		ID:              row.PublicID,
		Name:            row.Name,
		AdminUserID:     row.AdminUserID,
		Version:         row.Version,
		RuleSet:         scoring.RuleSet(doc.RuleSet),
		RuleSetTemplate: doc.RuleSetTemplate,
		ChipAllowance:   chip.Allowance(doc.ChipAllowance),
		HasEnded:        row.HasEnded,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	for _, p := range doc.Participants {
		out.Participants = append(out.Participants, league.Participant(p))
	}
	for _, g := range doc.GameWeeks {
		out.GameWeeks = append(out.GameWeeks, gameWeekFromDocument(g))
	}
	for _, c := range doc.Chips {
		out.Chips = append(out.Chips, chip.Assignment{
			ParticipantID: c.ParticipantID,
			Kind:          chip.Kind(c.Kind),
			Round:         c.Round,
			Scope:         chip.Scope(c.Scope),
			FixtureID:     c.FixtureID,
			AssignedAt:    c.AssignedAt,
		})
	}
	for _, s := range doc.Standings {
		out.Standings = append(out.Standings, leaguestanding.Standing(s))
	}
	return out, nil
}

func gameWeekToDocument(g gameweek.GameWeek) gameWeekDocument {
	out := gameWeekDocument{
		Round:            g.Round,
		StartsAt:         g.StartsAt,
		Deadline:         g.Deadline,
		Fixtures:         make([]fixtureDocument, 0, len(g.Fixtures)),
		Predictions:      make([]predictionDocument, 0, len(g.Predictions)),
		HasBeenCorrected: g.HasBeenCorrected,
		HasEnded:         g.HasEnded,
		ForceEnded:       g.ForceEnded,
		CorrectedAt:      g.CorrectedAt,
		EndedAt:          g.EndedAt,
	}
	for _, fx := range g.Fixtures {
		doc := fixtureDocument{
			ID:                      fx.ID,
			HomeTeam:                fx.HomeTeam,
			AwayTeam:                fx.AwayTeam,
			KickoffAt:               fx.KickoffAt,
			ShouldPredictGoalScorer: fx.ShouldPredictGoalScorer,
			GoalScorerFromTeam:      fx.GoalScorerFromTeam,
			OddsHome:                fx.Odds.Home,
			OddsDraw:                fx.Odds.Draw,
			OddsAway:                fx.Odds.Away,
			CorrectedAt:             fx.CorrectedAt,
		}
		if fx.FinalResult != nil {
			result := &resultDocument{
				HomeGoals:        fx.FinalResult.HomeGoals,
				AwayGoals:        fx.FinalResult.AwayGoals,
				GoalScorers:      fx.FinalResult.GoalScorers,
				FirstTeamToScore: string(fx.FinalResult.FirstTeamToScore),
			}
			if fx.FinalResult.Aggregate != nil {
				agg := aggregateDocument(*fx.FinalResult.Aggregate)
				result.Aggregate = &agg
			}
			doc.FinalResult = result
		}
		out.Fixtures = append(out.Fixtures, doc)
	}
	for _, p := range g.Predictions {
		doc := predictionDocument{
			ParticipantID:    p.ParticipantID,
			FixtureID:        p.FixtureID,
			HomeGoals:        p.HomeGoals,
			AwayGoals:        p.AwayGoals,
			FirstTeamToScore: string(p.FirstTeamToScore),
			SubmittedAt:      p.SubmittedAt,
		}
		if p.GoalScorer != nil {
			doc.GoalScorer = &scorerDocument{
				PlayerID: p.GoalScorer.PlayerID,
				Name:     p.GoalScorer.Name,
				Team:     p.GoalScorer.Team,
				Position: string(p.GoalScorer.Position),
			}
		}
		if p.Points != nil {
			points := breakdownDocument(*p.Points)
			doc.Points = &points
		}
		out.Predictions = append(out.Predictions, doc)
	}
	return out
}

func gameWeekFromDocument(doc gameWeekDocument) gameweek.GameWeek {
	out := gameweek.GameWeek{
		Round:            doc.Round,
		StartsAt:         doc.StartsAt,
		Deadline:         doc.Deadline,
		HasBeenCorrected: doc.HasBeenCorrected,
		HasEnded:         doc.HasEnded,
		ForceEnded:       doc.ForceEnded,
		CorrectedAt:      doc.CorrectedAt,
		EndedAt:          doc.EndedAt,
	}
	for _, fd := range doc.Fixtures {
		fx := fixture.Fixture{
			ID:                      fd.ID,
			HomeTeam:                fd.HomeTeam,
			AwayTeam:                fd.AwayTeam,
			KickoffAt:               fd.KickoffAt,
			ShouldPredictGoalScorer: fd.ShouldPredictGoalScorer,
			GoalScorerFromTeam:      fd.GoalScorerFromTeam,
			Odds:                    fixture.Odds{Home: fd.OddsHome, Draw: fd.OddsDraw, Away: fd.OddsAway},
			CorrectedAt:             fd.CorrectedAt,
		}
		if fd.FinalResult != nil {
			result := &fixture.Result{
				HomeGoals:        fd.FinalResult.HomeGoals,
				AwayGoals:        fd.FinalResult.AwayGoals,
				GoalScorers:      fd.FinalResult.GoalScorers,
				FirstTeamToScore: fixture.Side(fd.FinalResult.FirstTeamToScore),
			}
			if fd.FinalResult.Aggregate != nil {
				agg := fixture.Aggregate(*fd.FinalResult.Aggregate)
				result.Aggregate = &agg
			}
			fx.FinalResult = result
		}
		out.Fixtures = append(out.Fixtures, fx)
	}
	for _, pd := range doc.Predictions {
		p := prediction.Prediction{
			ParticipantID:    pd.ParticipantID,
			FixtureID:        pd.FixtureID,
			HomeGoals:        pd.HomeGoals,
			AwayGoals:        pd.AwayGoals,
			FirstTeamToScore: fixture.Side(pd.FirstTeamToScore),
			SubmittedAt:      pd.SubmittedAt,
		}
		if pd.GoalScorer != nil {
			p.GoalScorer = &prediction.Scorer{
				PlayerID: pd.GoalScorer.PlayerID,
				Name:     pd.GoalScorer.Name,
				Team:     pd.GoalScorer.Team,
				Position: player.Position(pd.GoalScorer.Position),
			}
		}
		if pd.Points != nil {
			points := prediction.Breakdown(*pd.Points)
			p.Points = &points
		}
		out.Predictions = append(out.Predictions, p)
	}
	return out
}
