package chip

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
)

func correctedFixture(id string, home, away int) fixture.Fixture {
	return fixture.Fixture{ID: id, FinalResult: &fixture.Result{HomeGoals: home, AwayGoals: away}}
}

func TestApply_DoubleUpIsIdempotentFromBase(t *testing.T) {
	t.Parallel()

	fx := correctedFixture("f1", 2, 1)
	base := prediction.Breakdown{CorrectOutcome: 1, CorrectGoalsByTeam: 2, CorrectGoalDifference: 1, CorrectResult: 1, OutcomeCorrect: true, Total: 5}
	doubleUp := Assignment{ParticipantID: "u1", Kind: KindDoubleUp, Round: 1, Scope: ScopeRound}

	first := Apply(base, doubleUp, fx)
	if first.Total != 10 {
		t.Fatalf("unexpected doubled total: got=%d want=10", first.Total)
	}

	again := Apply(first, doubleUp, fx)
	if again.Total != 10 {
		t.Fatalf("re-applying on a chipped breakdown must not compound: got=%d", again.Total)
	}

	rederived := Apply(first.Base(), doubleUp, fx)
	if diff := cmp.Diff(first, rederived); diff != "" {
		t.Fatalf("re-derived breakdown differs (-first +rederived):\n%s", diff)
	}
	if base.Total != 5 {
		t.Fatalf("Apply must not mutate its input, got total %d", base.Total)
	}
}

func TestApply_RiskTakerDoublesOddsBonusOnly(t *testing.T) {
	t.Parallel()

	fx := correctedFixture("f1", 0, 1)
	base := prediction.Breakdown{CorrectOutcome: 1, OddsBonus: 3, OutcomeCorrect: true}.Recompute()

	got := Apply(base, Assignment{ParticipantID: "u1", Kind: KindRiskTaker, Round: 1, Scope: ScopeRound}, fx)
	if got.ChipBonus != 3 {
		t.Fatalf("unexpected chip bonus: got=%d want=3", got.ChipBonus)
	}
	if got.Total != 7 {
		t.Fatalf("unexpected total: got=%d want=7", got.Total)
	}
}

func TestApply_GoalFestIgnoresPredictionCorrectness(t *testing.T) {
	t.Parallel()

	fx := correctedFixture("f1", 3, 2)
	wrong := prediction.Breakdown{}

	got := Apply(wrong, Assignment{ParticipantID: "u1", Kind: KindGoalFest, Round: 1, Scope: ScopeFixture, FixtureID: "f1"}, fx)
	if got.Total != 5 {
		t.Fatalf("unexpected goal fest total: got=%d want=5", got.Total)
	}

	other := Apply(wrong, Assignment{ParticipantID: "u1", Kind: KindGoalFest, Round: 1, Scope: ScopeFixture, FixtureID: "f2"}, fx)
	if other.Total != 0 {
		t.Fatalf("goal fest must only touch the designated fixture, got %d", other.Total)
	}
}

func TestApplyRound_OrderAndCleanSweep(t *testing.T) {
	t.Parallel()

	fixtures := []fixture.Fixture{correctedFixture("f1", 2, 1), correctedFixture("f2", 1, 1)}
	breakdowns := map[string]prediction.Breakdown{
		"f1": prediction.Breakdown{CorrectOutcome: 1, OddsBonus: 1, OutcomeCorrect: true}.Recompute(),
		"f2": prediction.Breakdown{CorrectOutcome: 1, OutcomeCorrect: true}.Recompute(),
	}
	assignments := []Assignment{
		{ParticipantID: "u1", Kind: KindCleanSweep, Round: 1, Scope: ScopeRound},
		{ParticipantID: "u1", Kind: KindDoubleUp, Round: 1, Scope: ScopeRound},
		{ParticipantID: "u1", Kind: KindRiskTaker, Round: 1, Scope: ScopeRound},
	}

	got := ApplyRound(fixtures, breakdowns, assignments)

	// f1: base 2, risk taker +1 = 3, double up = 6, clean sweep = 12.
	if got["f1"].Total != 12 {
		t.Fatalf("unexpected f1 total: got=%d want=12", got["f1"].Total)
	}
	// f2: base 1, double up = 2, clean sweep = 4.
	if got["f2"].Total != 4 {
		t.Fatalf("unexpected f2 total: got=%d want=4", got["f2"].Total)
	}
	wantChips := []string{"risk_taker", "double_up", "clean_sweep"}
	if diff := cmp.Diff(wantChips, got["f1"].Chips); diff != "" {
		t.Fatalf("unexpected chip order (-want +got):\n%s", diff)
	}

	rerun := ApplyRound(fixtures, got, assignments)
	if diff := cmp.Diff(got, rerun); diff != "" {
		t.Fatalf("ApplyRound must be idempotent (-first +rerun):\n%s", diff)
	}
}

func TestApplyRound_CleanSweepNeedsEveryOutcome(t *testing.T) {
	t.Parallel()

	sweep := []Assignment{{ParticipantID: "u1", Kind: KindCleanSweep, Round: 1, Scope: ScopeRound}}
	fixtures := []fixture.Fixture{correctedFixture("f1", 2, 1), correctedFixture("f2", 0, 0)}

	missed := map[string]prediction.Breakdown{
		"f1": prediction.Breakdown{CorrectOutcome: 1, OutcomeCorrect: true}.Recompute(),
		"f2": prediction.Breakdown{CorrectGoalsByTeam: 1}.Recompute(),
	}
	got := ApplyRound(fixtures, missed, sweep)
	if got["f1"].Total != 1 || got["f2"].Total != 1 {
		t.Fatalf("clean sweep must not fire with a wrong outcome: %+v", got)
	}

	pending := []fixture.Fixture{correctedFixture("f1", 2, 1), {ID: "f2"}}
	onlyFirst := map[string]prediction.Breakdown{
		"f1": prediction.Breakdown{CorrectOutcome: 1, OutcomeCorrect: true}.Recompute(),
	}
	got = ApplyRound(pending, onlyFirst, sweep)
	if got["f1"].Total != 1 {
		t.Fatalf("clean sweep must wait for every fixture, got %d", got["f1"].Total)
	}
}
