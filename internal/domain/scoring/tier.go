package scoring

import (
	"fmt"
	"math"

	"github.com/riskibarqy/prediction-league/internal/domain/player"
)

// OddsTier buckets decimal odds. Lower bounds are inclusive, upper bounds exclusive.
type OddsTier int

const (
	OddsTierNone OddsTier = iota
	OddsTier3To4
	OddsTier4To6
	OddsTier6To10
	OddsTier10Plus
)

func (t OddsTier) String() string {
	switch t {
	case OddsTierNone:
		return "none"
	case OddsTier3To4:
		return "3-4"
	case OddsTier4To6:
		return "4-6"
	case OddsTier6To10:
		return "6-10"
	case OddsTier10Plus:
		return "10+"
	default:
		return fmt.Sprintf("OddsTier(%d)", int(t))
	}
}

// ResolveOddsTier never fails: undefined or out-of-range odds are OddsTierNone.
func ResolveOddsTier(odds float64) OddsTier {
	switch {
	case math.IsNaN(odds) || odds < 3:
		return OddsTierNone
	case odds < 4:
		return OddsTier3To4
	case odds < 6:
		return OddsTier4To6
	case odds < 10:
		return OddsTier6To10
	default:
		return OddsTier10Plus
	}
}

func (r RuleSet) oddsTierBonus(tier OddsTier) int {
	switch tier {
	case OddsTierNone:
		return 0
	case OddsTier3To4:
		return r.OddsBonus3To4
	case OddsTier4To6:
		return r.OddsBonus4To6
	case OddsTier6To10:
		return r.OddsBonus6To10
	case OddsTier10Plus:
		return r.OddsBonus10Plus
	default:
		return 0
	}
}

// OddsBonus resolves odds to a tier and returns its configured value.
func OddsBonus(odds float64, rules RuleSet) int {
	return rules.oddsTierBonus(ResolveOddsTier(odds))
}

// GoalScorerBonus returns the tier value for a correctly predicted scorer.
// Goalkeepers and unknown positions are worth nothing.
func GoalScorerBonus(position player.Position, rules RuleSet) int {
	switch position {
	case player.PositionDefender:
		return rules.CorrectGoalScorerDefender
	case player.PositionMidfielder:
		return rules.CorrectGoalScorerMidfielder
	case player.PositionForward:
		return rules.CorrectGoalScorerForward
	case player.PositionGoalkeeper:
		return 0
	default:
		// Empty or unrecognised positions.
		return 0
	}
}
