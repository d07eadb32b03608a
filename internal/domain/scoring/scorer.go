package scoring

import (
	"fmt"

	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
)

// Score evaluates one prediction against the fixture's official result.
//
// Every rule is checked on its own and all fired values are summed, so an
// exact score also earns the outcome, goal difference and per-team goals.
// Bonus categories that need round-wide context are left at zero; see
// SuggestBonuses.
func Score(pred prediction.Prediction, fx fixture.Fixture, rules RuleSet) (prediction.Breakdown, error) {
	if fx.FinalResult == nil {
		return prediction.Breakdown{}, fmt.Errorf("%w: fixture=%s", ErrIncompleteData, fx.ID)
	}
	if !pred.IsPredicted() {
		return prediction.Breakdown{}, nil
	}

	result := *fx.FinalResult
	home, away := *pred.HomeGoals, *pred.AwayGoals

	var out prediction.Breakdown
	if fixture.OutcomeOf(home, away) == result.Outcome() {
		out.OutcomeCorrect = true
		out.CorrectOutcome = rules.CorrectOutcome
	}
	if home == result.HomeGoals {
		out.CorrectGoalsByTeam += rules.CorrectGoalsByTeam
	}
	if away == result.AwayGoals {
		out.CorrectGoalsByTeam += rules.CorrectGoalsByTeam
	}
	if home-away == result.GoalDifference() {
		out.CorrectGoalDifference = rules.CorrectGoalDifference
	}
	if home == result.HomeGoals && away == result.AwayGoals {
		out.CorrectResult = rules.CorrectResult
	}
	if fx.ShouldPredictGoalScorer && pred.GoalScorer != nil && result.HasScorer(pred.GoalScorer.Name) {
		out.CorrectGoalScorer = GoalScorerBonus(pred.GoalScorer.Position, rules)
	}

	return out.Recompute(), nil
}

// IsExactResult reports whether the prediction matches both goal counts.
func IsExactResult(pred prediction.Prediction, result fixture.Result) bool {
	return pred.IsPredicted() && *pred.HomeGoals == result.HomeGoals && *pred.AwayGoals == result.AwayGoals
}
