package memory

import (
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/chip"
	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/gameweek"
	"github.com/riskibarqy/prediction-league/internal/domain/league"
	"github.com/riskibarqy/prediction-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
)

const (
	LeagueIDLiga1Indonesia = "idn-liga-1-predictor"
	SeedAdminUserID        = "seed-admin"
)

// SeedLeagues returns a demo league whose first round opens one hour after
// now, so a fresh in-memory server accepts predictions right away.
func SeedLeagues(now time.Time) []league.League {
	now = now.UTC().Truncate(time.Minute)
	template, _ := scoring.TemplateByName(scoring.DefaultTemplate)
	startsAt := now.Add(-time.Hour)
	deadline := now.Add(24 * time.Hour)

	return []league.League{
		{
			ID:              LeagueIDLiga1Indonesia,
			Name:            "Liga 1 Indonesia Predictor",
			AdminUserID:     SeedAdminUserID,
			Version:         1,
			RuleSet:         template.Rules,
			RuleSetTemplate: template.Name,
			ChipAllowance:   chip.DefaultAllowance(),
			Participants: []league.Participant{
				{UserID: SeedAdminUserID, DisplayName: "League Admin", JoinedAt: now},
			},
			GameWeeks: []gameweek.GameWeek{
				{
					Round:    1,
					StartsAt: startsAt,
					Deadline: deadline,
					Fixtures: []fixture.Fixture{
						{
							ID:                      "idn-r1-persija-persib",
							HomeTeam:                "Persija Jakarta",
							AwayTeam:                "Persib Bandung",
							KickoffAt:               deadline,
							ShouldPredictGoalScorer: true,
							Odds:                    fixture.Odds{Home: 2.4, Draw: 3.1, Away: 2.9},
						},
						{
							ID:                 "idn-r1-persebaya-baliutd",
							HomeTeam:           "Persebaya Surabaya",
							AwayTeam:           "Bali United",
							KickoffAt:          deadline.Add(3 * time.Hour),
							GoalScorerFromTeam: "Bali United",
							Odds:               fixture.Odds{Home: 2.0, Draw: 3.3, Away: 3.8},
						},
					},
				},
			},
			Standings: []leaguestanding.Standing{
				{ParticipantID: SeedAdminUserID, DisplayName: "League Admin", Rank: 1},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
