package scoring

import (
	"math"
	"testing"

	"github.com/riskibarqy/prediction-league/internal/domain/player"
)

func TestResolveOddsTier_Boundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		odds float64
		want OddsTier
	}{
		{odds: 0, want: OddsTierNone},
		{odds: -4, want: OddsTierNone},
		{odds: math.NaN(), want: OddsTierNone},
		{odds: 2.99, want: OddsTierNone},
		{odds: 3.00, want: OddsTier3To4},
		{odds: 3.99, want: OddsTier3To4},
		{odds: 4.00, want: OddsTier4To6},
		{odds: 5.99, want: OddsTier4To6},
		{odds: 6.00, want: OddsTier6To10},
		{odds: 9.99, want: OddsTier6To10},
		{odds: 10.00, want: OddsTier10Plus},
		{odds: math.Inf(1), want: OddsTier10Plus},
	}

	for _, tc := range tests {
		if got := ResolveOddsTier(tc.odds); got != tc.want {
			t.Fatalf("ResolveOddsTier(%v): got=%s want=%s", tc.odds, got, tc.want)
		}
	}
}

func TestOddsBonus_UsesConfiguredTierValue(t *testing.T) {
	t.Parallel()

	rules := validRules()
	if got := OddsBonus(4.0, rules); got != rules.OddsBonus4To6 {
		t.Fatalf("unexpected bonus: got=%d want=%d", got, rules.OddsBonus4To6)
	}
	if got := OddsBonus(1.5, rules); got != 0 {
		t.Fatalf("unexpected bonus for favourite odds: got=%d want=0", got)
	}
}

func TestGoalScorerBonus(t *testing.T) {
	t.Parallel()

	rules := validRules()
	tests := []struct {
		position player.Position
		want     int
	}{
		{position: player.PositionDefender, want: 3},
		{position: player.PositionMidfielder, want: 2},
		{position: player.PositionForward, want: 1},
		{position: player.PositionGoalkeeper, want: 0},
		{position: player.PositionUnknown, want: 0},
		{position: player.Position("WINGBACK"), want: 0},
	}

	for _, tc := range tests {
		if got := GoalScorerBonus(tc.position, rules); got != tc.want {
			t.Fatalf("GoalScorerBonus(%q): got=%d want=%d", tc.position, got, tc.want)
		}
	}
}
