package chip

import (
	"sort"

	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
)

// Apply adds one per-prediction chip to a breakdown. A chip already listed in
// the breakdown is not applied again, and Clean Sweep is left to ApplyRound
// because it needs the whole round.
func Apply(b prediction.Breakdown, a Assignment, fx fixture.Fixture) prediction.Breakdown {
	if b.HasChip(string(a.Kind)) || !a.Covers(fx.ID) {
		return b
	}

	out := b.Clone().Recompute()
	switch a.Kind {
	case KindRiskTaker:
		out.ChipBonus += out.OddsBonus
	case KindGoalFest:
		if fx.FinalResult == nil {
			return b
		}
		out.ChipBonus += fx.FinalResult.TotalGoals()
	case KindDoubleUp:
		out.ChipBonus += out.Total
	case KindCleanSweep:
		return b
	default:
		return b
	}
	out.Chips = append(out.Chips, string(a.Kind))

	return out.Recompute()
}

// ApplyRound re-derives every chip for one participant in one game week.
//
// breakdowns holds the participant's scored predictions keyed by fixture id.
// Each breakdown is reset to its base first, so repeated corrections never
// compound. Chips run in AllKinds order; Clean Sweep doubles every breakdown
// once all fixtures are corrected and every outcome was predicted correctly.
func ApplyRound(fixtures []fixture.Fixture, breakdowns map[string]prediction.Breakdown, assignments []Assignment) map[string]prediction.Breakdown {
	out := make(map[string]prediction.Breakdown, len(breakdowns))
	for fixtureID, b := range breakdowns {
		out[fixtureID] = b.Base()
	}

	ordered := append([]Assignment(nil), assignments...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return kindOrder(ordered[i].Kind) < kindOrder(ordered[j].Kind)
	})

	for _, a := range ordered {
		if a.Kind == KindCleanSweep {
			if cleanSweepEarned(fixtures, out) {
				for fixtureID, b := range out {
					b.ChipBonus += b.Total
					b.Chips = append(b.Chips, string(KindCleanSweep))
					out[fixtureID] = b.Recompute()
				}
			}
			continue
		}
		for _, fx := range fixtures {
			b, ok := out[fx.ID]
			if !ok {
				continue
			}
			out[fx.ID] = Apply(b, a, fx)
		}
	}

	return out
}

func cleanSweepEarned(fixtures []fixture.Fixture, breakdowns map[string]prediction.Breakdown) bool {
	if len(fixtures) == 0 {
		return false
	}
	for _, fx := range fixtures {
		if !fx.IsCorrected() {
			return false
		}
		b, ok := breakdowns[fx.ID]
		if !ok || !b.OutcomeCorrect {
			return false
		}
	}
	return true
}

func kindOrder(kind Kind) int {
	for i, k := range AllKinds {
		if k == kind {
			return i
		}
	}
	return len(AllKinds)
}
