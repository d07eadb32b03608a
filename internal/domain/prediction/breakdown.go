package prediction

import "slices"

// Breakdown holds the points awarded per rule category for one prediction.
// ChipBonus and Chips carry chip effects on top of the base rule values.
type Breakdown struct {
	CorrectOutcome        int
	CorrectGoalsByTeam    int
	CorrectGoalDifference int
	CorrectResult         int
	CorrectGoalScorer     int
	OddsBonus             int
	FirstTeamToScore      int
	GoalFest              int
	UnderdogBonus         int
	ChipBonus             int
	Chips                 []string
	OutcomeCorrect        bool
	Total                 int
}

// BaseTotal sums the rule categories, ignoring chips.
func (b Breakdown) BaseTotal() int {
	return b.CorrectOutcome +
		b.CorrectGoalsByTeam +
		b.CorrectGoalDifference +
		b.CorrectResult +
		b.CorrectGoalScorer +
		b.OddsBonus +
		b.FirstTeamToScore +
		b.GoalFest +
		b.UnderdogBonus
}

// Base returns the breakdown with every chip effect removed.
func (b Breakdown) Base() Breakdown {
	out := b
	out.ChipBonus = 0
	out.Chips = nil
	out.Total = out.BaseTotal()
	return out
}

// Recompute refreshes Total from the rule categories and ChipBonus.
func (b Breakdown) Recompute() Breakdown {
	b.Total = b.BaseTotal() + b.ChipBonus
	return b
}

func (b Breakdown) HasChip(kind string) bool {
	return slices.Contains(b.Chips, kind)
}

// Clone returns a copy that does not share the Chips slice.
func (b Breakdown) Clone() Breakdown {
	out := b
	out.Chips = slices.Clone(b.Chips)
	return out
}
