package scoring

import (
	"fmt"

	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
)

// GoalFestMinGoals is the match total that qualifies for the goal fest bonus.
const GoalFestMinGoals = 5

// Bonuses are the categories that need context beyond a single prediction.
type Bonuses struct {
	OddsBonus        int
	FirstTeamToScore int
	GoalFest         int
	UnderdogBonus    int
}

func (b Bonuses) IsZero() bool {
	return b == Bonuses{}
}

// Suggestion is a computed bonus proposal for one participant, shown to the
// administrator before the correction is saved.
type Suggestion struct {
	ParticipantID string
	OddsTier      OddsTier
	Bonuses       Bonuses
}

// SuggestBonuses proposes bonus categories for every prediction of one fixture:
//   - odds: correct outcome, valued by the tier of that outcome's odds;
//   - first team to score: predicted side equals the official one;
//   - goal fest: exact result in a match of at least GoalFestMinGoals goals;
//   - underdog: the only participant with the exact result.
func SuggestBonuses(fx fixture.Fixture, preds []prediction.Prediction, rules RuleSet) ([]Suggestion, error) {
	if fx.FinalResult == nil {
		return nil, fmt.Errorf("%w: fixture=%s", ErrIncompleteData, fx.ID)
	}
	result := *fx.FinalResult

	exactCount := 0
	for _, p := range preds {
		if p.FixtureID == fx.ID && IsExactResult(p, result) {
			exactCount++
		}
	}

	out := make([]Suggestion, 0, len(preds))
	for _, p := range preds {
		if p.FixtureID != fx.ID || !p.IsPredicted() {
			continue
		}

		s := Suggestion{ParticipantID: p.ParticipantID}
		if outcome, _ := p.Outcome(); outcome == result.Outcome() {
			s.OddsTier = ResolveOddsTier(fx.OddsFor(outcome))
			s.Bonuses.OddsBonus = rules.oddsTierBonus(s.OddsTier)
		}
		if p.FirstTeamToScore != fixture.SideNone && p.FirstTeamToScore == result.FirstTeamToScore {
			s.Bonuses.FirstTeamToScore = rules.FirstTeamToScore
		}
		exact := IsExactResult(p, result)
		if exact && result.TotalGoals() >= GoalFestMinGoals {
			s.Bonuses.GoalFest = rules.GoalFest
		}
		if exact && exactCount == 1 {
			s.Bonuses.UnderdogBonus = rules.UnderdogBonus
		}
		out = append(out, s)
	}

	return out, nil
}

// ValidateBonuses rejects awards that are negative or above what the rule
// set can grant for that category.
func ValidateBonuses(b Bonuses, rules RuleSet) error {
	check := func(name string, value, limit int) error {
		if value < 0 || value > limit {
			return fmt.Errorf("%w: %s=%d outside 0..%d", ErrInvalidBonus, name, value, limit)
		}
		return nil
	}
	if err := check("oddsBonus", b.OddsBonus, rules.MaxOddsBonus()); err != nil {
		return err
	}
	if err := check("firstTeamToScore", b.FirstTeamToScore, rules.FirstTeamToScore); err != nil {
		return err
	}
	if err := check("goalFest", b.GoalFest, rules.GoalFest); err != nil {
		return err
	}
	return check("underdogBonus", b.UnderdogBonus, rules.UnderdogBonus)
}

// WithBonuses writes the bonus categories into a base breakdown.
func WithBonuses(b prediction.Breakdown, bonuses Bonuses) prediction.Breakdown {
	out := b.Clone()
	out.OddsBonus = bonuses.OddsBonus
	out.FirstTeamToScore = bonuses.FirstTeamToScore
	out.GoalFest = bonuses.GoalFest
	out.UnderdogBonus = bonuses.UnderdogBonus
	return out.Recompute()
}
