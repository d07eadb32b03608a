package fixture

import (
	"slices"
	"strings"
	"time"
)

// Outcome is the 1/X/2 classification of a score.
type Outcome string

const (
	OutcomeHome Outcome = "1"
	OutcomeDraw Outcome = "X"
	OutcomeAway Outcome = "2"
)

// Side identifies one of the two teams in a fixture.
type Side string

const (
	SideNone Side = ""
	SideHome Side = "home"
	SideAway Side = "away"
)

// Odds are decimal odds per outcome, captured by the administrator.
type Odds struct {
	Home float64
	Draw float64
	Away float64
}

// Aggregate is the two-legged total, informational only.
type Aggregate struct {
	HomeGoals int
	AwayGoals int
}

// Result is the official result entered by the administrator.
type Result struct {
	HomeGoals        int
	AwayGoals        int
	GoalScorers      []string
	FirstTeamToScore Side
	Aggregate        *Aggregate
}

// Fixture represents one scheduled match within a game week.
type Fixture struct {
	ID                      string
	HomeTeam                string
	AwayTeam                string
	KickoffAt               time.Time
	ShouldPredictGoalScorer bool
	GoalScorerFromTeam      string
	Odds                    Odds
	FinalResult             *Result
	CorrectedAt             *time.Time
}

func OutcomeOf(homeGoals, awayGoals int) Outcome {
	switch {
	case homeGoals > awayGoals:
		return OutcomeHome
	case homeGoals < awayGoals:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}

func (r Result) Outcome() Outcome {
	return OutcomeOf(r.HomeGoals, r.AwayGoals)
}

func (r Result) TotalGoals() int {
	return r.HomeGoals + r.AwayGoals
}

func (r Result) GoalDifference() int {
	return r.HomeGoals - r.AwayGoals
}

// HasScorer reports whether name is among the official goal-scorers.
// Comparison ignores case and surrounding whitespace.
func (r Result) HasScorer(name string) bool {
	needle := normalizeName(name)
	if needle == "" {
		return false
	}
	for _, scorer := range r.GoalScorers {
		if normalizeName(scorer) == needle {
			return true
		}
	}
	return false
}

func (r Result) Validate() error {
	if r.HomeGoals < 0 || r.AwayGoals < 0 {
		return ErrInvalidResult
	}
	if r.Aggregate != nil && (r.Aggregate.HomeGoals < 0 || r.Aggregate.AwayGoals < 0) {
		return ErrInvalidResult
	}
	switch r.FirstTeamToScore {
	case SideNone:
	case SideHome:
		if r.HomeGoals == 0 {
			return ErrInvalidResult
		}
	case SideAway:
		if r.AwayGoals == 0 {
			return ErrInvalidResult
		}
	default:
		return ErrInvalidResult
	}
	return nil
}

// OddsFor returns the decimal odds of the given outcome, 0 when not captured.
func (f Fixture) OddsFor(outcome Outcome) float64 {
	switch outcome {
	case OutcomeHome:
		return f.Odds.Home
	case OutcomeDraw:
		return f.Odds.Draw
	case OutcomeAway:
		return f.Odds.Away
	default:
		return 0
	}
}

func (f Fixture) IsCorrected() bool {
	return f.FinalResult != nil
}

func (f Fixture) HasKickedOff(now time.Time) bool {
	return !f.KickoffAt.IsZero() && !now.Before(f.KickoffAt)
}

// AcceptsScorerFrom reports whether a goal-scorer from team may be predicted.
func (f Fixture) AcceptsScorerFrom(team string) bool {
	restriction := strings.TrimSpace(f.GoalScorerFromTeam)
	if restriction == "" {
		return true
	}
	return strings.EqualFold(restriction, strings.TrimSpace(team))
}

func ParseSide(raw string) (Side, bool) {
	switch Side(strings.ToLower(strings.TrimSpace(raw))) {
	case SideNone:
		return SideNone, true
	case SideHome:
		return SideHome, true
	case SideAway:
		return SideAway, true
	default:
		return SideNone, false
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Clone returns a copy that shares no pointers or slices with f.
func (f Fixture) Clone() Fixture {
	out := f
	if f.FinalResult != nil {
		result := f.FinalResult.Clone()
		out.FinalResult = &result
	}
	if f.CorrectedAt != nil {
		at := *f.CorrectedAt
		out.CorrectedAt = &at
	}
	return out
}

func (r Result) Clone() Result {
	out := r
	out.GoalScorers = slices.Clone(r.GoalScorers)
	if r.Aggregate != nil {
		agg := *r.Aggregate
		out.Aggregate = &agg
	}
	return out
}
