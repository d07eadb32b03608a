package scoring

import (
	"errors"
	"fmt"
)

// RuleSet is the point schedule of one league. A zero value disables a rule.
type RuleSet struct {
	CorrectOutcome              int `yaml:"correctOutcome"`
	CorrectResult               int `yaml:"correctResult"`
	CorrectGoalDifference       int `yaml:"correctGoalDifference"`
	CorrectGoalsByTeam          int `yaml:"correctGoalsByTeam"`
	CorrectGoalScorerDefender   int `yaml:"correctGoalScorerDefender"`
	CorrectGoalScorerMidfielder int `yaml:"correctGoalScorerMidfielder"`
	CorrectGoalScorerForward    int `yaml:"correctGoalScorerForward"`
	FirstTeamToScore            int `yaml:"firstTeamToScore"`
	GoalFest                    int `yaml:"goalFest"`
	UnderdogBonus               int `yaml:"underdogBonus"`
	OddsBonus3To4               int `yaml:"oddsBonus3To4"`
	OddsBonus4To6               int `yaml:"oddsBonus4To6"`
	OddsBonus6To10              int `yaml:"oddsBonus6To10"`
	OddsBonus10Plus             int `yaml:"oddsBonus10Plus"`
}

// Range is the accepted inclusive interval of one rule value.
type Range struct {
	Field string
	Min   int
	Max   int
}

type ruleField struct {
	Range
	value func(RuleSet) int
}

var ruleFields = []ruleField{
	{Range{"correctOutcome", 1, 3}, func(r RuleSet) int { return r.CorrectOutcome }},
	{Range{"correctResult", 0, 5}, func(r RuleSet) int { return r.CorrectResult }},
	{Range{"correctGoalDifference", 0, 3}, func(r RuleSet) int { return r.CorrectGoalDifference }},
	{Range{"correctGoalsByTeam", 0, 3}, func(r RuleSet) int { return r.CorrectGoalsByTeam }},
	{Range{"correctGoalScorerDefender", 0, 5}, func(r RuleSet) int { return r.CorrectGoalScorerDefender }},
	{Range{"correctGoalScorerMidfielder", 0, 5}, func(r RuleSet) int { return r.CorrectGoalScorerMidfielder }},
	{Range{"correctGoalScorerForward", 0, 5}, func(r RuleSet) int { return r.CorrectGoalScorerForward }},
	{Range{"firstTeamToScore", 0, 3}, func(r RuleSet) int { return r.FirstTeamToScore }},
	{Range{"goalFest", 0, 5}, func(r RuleSet) int { return r.GoalFest }},
	{Range{"underdogBonus", 0, 5}, func(r RuleSet) int { return r.UnderdogBonus }},
	{Range{"oddsBonus3To4", 0, 10}, func(r RuleSet) int { return r.OddsBonus3To4 }},
	{Range{"oddsBonus4To6", 0, 10}, func(r RuleSet) int { return r.OddsBonus4To6 }},
	{Range{"oddsBonus6To10", 0, 10}, func(r RuleSet) int { return r.OddsBonus6To10 }},
	{Range{"oddsBonus10Plus", 0, 10}, func(r RuleSet) int { return r.OddsBonus10Plus }},
}

// Ranges lists the documented bounds in declaration order.
func Ranges() []Range {
	out := make([]Range, 0, len(ruleFields))
	for _, f := range ruleFields {
		out = append(out, f.Range)
	}
	return out
}

// Validate reports every value outside its range. Each joined error wraps
// ErrInvalidConfiguration.
func (r RuleSet) Validate() error {
	var errs []error
	for _, f := range ruleFields {
		v := f.value(r)
		if v < f.Min || v > f.Max {
			errs = append(errs, fmt.Errorf("%w: %s=%d outside %d..%d", ErrInvalidConfiguration, f.Field, v, f.Min, f.Max))
		}
	}
	return errors.Join(errs...)
}

// MaxOddsBonus is the highest configured odds tier value.
func (r RuleSet) MaxOddsBonus() int {
	return max(r.OddsBonus3To4, r.OddsBonus4To6, r.OddsBonus6To10, r.OddsBonus10Plus)
}
