package chip

import (
	"errors"
	"testing"
)

func TestAllowance_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		allowance Allowance
		wantErr   bool
	}{
		{name: "default", allowance: DefaultAllowance()},
		{name: "upper bounds", allowance: Allowance{RiskTaker: 4, DoubleUp: 4, GoalFest: 10, CleanSweep: 4}},
		{name: "zero risk taker", allowance: Allowance{RiskTaker: 0, DoubleUp: 1, GoalFest: 1, CleanSweep: 1}, wantErr: true},
		{name: "double up above four", allowance: Allowance{RiskTaker: 1, DoubleUp: 5, GoalFest: 1, CleanSweep: 1}, wantErr: true},
		{name: "goal fest above ten", allowance: Allowance{RiskTaker: 1, DoubleUp: 1, GoalFest: 11, CleanSweep: 1}, wantErr: true},
	}

	for _, tc := range tests {
		err := tc.allowance.Validate()
		if tc.wantErr && !errors.Is(err, ErrInvalidAllowance) {
			t.Fatalf("%s: expected ErrInvalidAllowance, got %v", tc.name, err)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestAssignment_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		assignment Assignment
		wantErr    bool
	}{
		{name: "round double up", assignment: Assignment{ParticipantID: "u1", Kind: KindDoubleUp, Round: 1, Scope: ScopeRound}},
		{name: "fixture goal fest", assignment: Assignment{ParticipantID: "u1", Kind: KindGoalFest, Round: 2, Scope: ScopeFixture, FixtureID: "f1"}},
		{name: "goal fest without fixture", assignment: Assignment{ParticipantID: "u1", Kind: KindGoalFest, Round: 2, Scope: ScopeRound}, wantErr: true},
		{name: "clean sweep on fixture", assignment: Assignment{ParticipantID: "u1", Kind: KindCleanSweep, Round: 1, Scope: ScopeFixture, FixtureID: "f1"}, wantErr: true},
		{name: "round zero", assignment: Assignment{ParticipantID: "u1", Kind: KindRiskTaker, Round: 0, Scope: ScopeRound}, wantErr: true},
		{name: "unknown kind", assignment: Assignment{ParticipantID: "u1", Kind: "triple_captain", Round: 1, Scope: ScopeRound}, wantErr: true},
		{name: "missing participant", assignment: Assignment{Kind: KindRiskTaker, Round: 1, Scope: ScopeRound}, wantErr: true},
	}

	for _, tc := range tests {
		err := tc.assignment.Validate()
		if tc.wantErr && !errors.Is(err, ErrInvalidAssignment) {
			t.Fatalf("%s: expected ErrInvalidAssignment, got %v", tc.name, err)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestCheckAssign_AllowanceCeiling(t *testing.T) {
	t.Parallel()

	allowance := DefaultAllowance()
	allowance.DoubleUp = 3

	var existing []Assignment
	for round := 1; round <= 5; round++ {
		next := Assignment{ParticipantID: "u1", Kind: KindDoubleUp, Round: round, Scope: ScopeRound}
		err := CheckAssign(existing, next, allowance)
		if round <= allowance.DoubleUp {
			if err != nil {
				t.Fatalf("round %d: unexpected error: %v", round, err)
			}
			existing = append(existing, next)
			continue
		}
		if !errors.Is(err, ErrAllowanceExceeded) {
			t.Fatalf("round %d: expected ErrAllowanceExceeded, got %v", round, err)
		}
	}

	if len(existing) != allowance.DoubleUp {
		t.Fatalf("unexpected accepted assignments: got=%d want=%d", len(existing), allowance.DoubleUp)
	}

	other := Assignment{ParticipantID: "u2", Kind: KindDoubleUp, Round: 1, Scope: ScopeRound}
	if err := CheckAssign(existing, other, allowance); err != nil {
		t.Fatalf("allowance must be counted per participant: %v", err)
	}
}

func TestCheckAssign_OneKindPerRound(t *testing.T) {
	t.Parallel()

	existing := []Assignment{{ParticipantID: "u1", Kind: KindRiskTaker, Round: 4, Scope: ScopeRound}}
	next := Assignment{ParticipantID: "u1", Kind: KindRiskTaker, Round: 4, Scope: ScopeFixture, FixtureID: "f9"}

	if err := CheckAssign(existing, next, DefaultAllowance()); !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("expected ErrAlreadyActive, got %v", err)
	}

	doubleUp := Assignment{ParticipantID: "u1", Kind: KindDoubleUp, Round: 4, Scope: ScopeRound}
	if err := CheckAssign(existing, doubleUp, DefaultAllowance()); err != nil {
		t.Fatalf("different kinds may share a round: %v", err)
	}
}

func TestRemaining(t *testing.T) {
	t.Parallel()

	existing := []Assignment{
		{ParticipantID: "u1", Kind: KindGoalFest, Round: 1},
		{ParticipantID: "u1", Kind: KindGoalFest, Round: 2},
		{ParticipantID: "u2", Kind: KindGoalFest, Round: 1},
	}

	got := Remaining(existing, "u1", DefaultAllowance())
	if got[KindGoalFest] != 1 {
		t.Fatalf("unexpected goal fest remaining: got=%d want=1", got[KindGoalFest])
	}
	if got[KindRiskTaker] != 2 {
		t.Fatalf("unexpected risk taker remaining: got=%d want=2", got[KindRiskTaker])
	}
}
