package chip

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrAllowanceExceeded = errors.New("chip allowance exceeded")
	ErrAlreadyActive     = errors.New("chip already active for this round")
	ErrInvalidAssignment = errors.New("invalid chip assignment")
	ErrInvalidAllowance  = errors.New("invalid chip allowance")
	ErrLocked            = errors.New("chip is locked for this round")
)

// Kind is a chip type. The declaration order of AllKinds is the order in
// which chips are applied to a round.
type Kind string

const (
	KindRiskTaker  Kind = "risk_taker"
	KindGoalFest   Kind = "goal_fest"
	KindDoubleUp   Kind = "double_up"
	KindCleanSweep Kind = "clean_sweep"
)

var AllKinds = []Kind{KindRiskTaker, KindGoalFest, KindDoubleUp, KindCleanSweep}

// Scope says whether a chip targets one fixture or the whole game week.
type Scope string

const (
	ScopeFixture Scope = "fixture"
	ScopeRound   Scope = "round"
)

// Assignment is a participant's chip for one game week.
type Assignment struct {
	ParticipantID string
	Kind          Kind
	Round         int
	Scope         Scope
	FixtureID     string
	AssignedAt    time.Time
}

// Allowance holds the per-league use ceilings for each chip kind.
type Allowance struct {
	RiskTaker  int
	DoubleUp   int
	GoalFest   int
	CleanSweep int
}

func DefaultAllowance() Allowance {
	return Allowance{
		RiskTaker:  2,
		DoubleUp:   2,
		GoalFest:   3,
		CleanSweep: 1,
	}
}

func ParseKind(raw string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(raw)))
	switch kind {
	case KindRiskTaker, KindGoalFest, KindDoubleUp, KindCleanSweep:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: unknown chip kind %q", ErrInvalidAssignment, raw)
	}
}

// Limit returns the ceiling for kind, 0 for unknown kinds.
func (a Allowance) Limit(kind Kind) int {
	switch kind {
	case KindRiskTaker:
		return a.RiskTaker
	case KindDoubleUp:
		return a.DoubleUp
	case KindGoalFest:
		return a.GoalFest
	case KindCleanSweep:
		return a.CleanSweep
	default:
		return 0
	}
}

// Validate enforces 1..4 uses for every chip except Goal Fest (1..10).
func (a Allowance) Validate() error {
	for _, kind := range AllKinds {
		limit := a.Limit(kind)
		upper := 4
		if kind == KindGoalFest {
			upper = 10
		}
		if limit < 1 || limit > upper {
			return fmt.Errorf("%w: %s=%d outside 1..%d", ErrInvalidAllowance, kind, limit, upper)
		}
	}
	return nil
}

func (a Assignment) Validate() error {
	if strings.TrimSpace(a.ParticipantID) == "" {
		return fmt.Errorf("%w: participant id is required", ErrInvalidAssignment)
	}
	if _, err := ParseKind(string(a.Kind)); err != nil {
		return err
	}
	if a.Round < 1 {
		return fmt.Errorf("%w: round must be >= 1", ErrInvalidAssignment)
	}

	switch a.Scope {
	case ScopeFixture:
		if strings.TrimSpace(a.FixtureID) == "" {
			return fmt.Errorf("%w: fixture scope requires a fixture id", ErrInvalidAssignment)
		}
		if a.Kind == KindCleanSweep {
			return fmt.Errorf("%w: clean sweep applies to the whole round", ErrInvalidAssignment)
		}
	case ScopeRound:
		if a.FixtureID != "" {
			return fmt.Errorf("%w: round scope cannot target a fixture", ErrInvalidAssignment)
		}
		if a.Kind == KindGoalFest {
			return fmt.Errorf("%w: goal fest must designate one fixture", ErrInvalidAssignment)
		}
	default:
		return fmt.Errorf("%w: unknown scope %q", ErrInvalidAssignment, a.Scope)
	}

	return nil
}

// Covers reports whether the assignment applies to the fixture.
func (a Assignment) Covers(fixtureID string) bool {
	if a.Scope == ScopeRound {
		return true
	}
	return a.FixtureID == fixtureID
}

// DefaultScope is the scope used when a request does not name one.
func DefaultScope(kind Kind) Scope {
	if kind == KindGoalFest {
		return ScopeFixture
	}
	return ScopeRound
}

// CheckAssign validates next against the participant's existing assignments:
// one chip of a kind per round and no more uses than the allowance.
func CheckAssign(existing []Assignment, next Assignment, allowance Allowance) error {
	if err := next.Validate(); err != nil {
		return err
	}

	used := 0
	for _, a := range existing {
		if a.ParticipantID != next.ParticipantID || a.Kind != next.Kind {
			continue
		}
		if a.Round == next.Round {
			return fmt.Errorf("%w: %s round=%d", ErrAlreadyActive, next.Kind, next.Round)
		}
		used++
	}

	limit := allowance.Limit(next.Kind)
	if used+1 > limit {
		return fmt.Errorf("%w: %s used=%d limit=%d", ErrAllowanceExceeded, next.Kind, used, limit)
	}

	return nil
}

// Remaining returns the unused count per kind for one participant.
func Remaining(existing []Assignment, participantID string, allowance Allowance) map[Kind]int {
	out := make(map[Kind]int, len(AllKinds))
	for _, kind := range AllKinds {
		out[kind] = allowance.Limit(kind)
	}
	for _, a := range existing {
		if a.ParticipantID == participantID {
			out[a.Kind]--
		}
	}
	return out
}
