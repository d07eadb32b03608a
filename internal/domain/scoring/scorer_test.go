package scoring

import (
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/player"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
)

func unitRules() RuleSet {
	return RuleSet{
		CorrectOutcome:              1,
		CorrectResult:               1,
		CorrectGoalDifference:       1,
		CorrectGoalsByTeam:          1,
		CorrectGoalScorerDefender:   3,
		CorrectGoalScorerMidfielder: 2,
		CorrectGoalScorerForward:    1,
	}
}

func predicted(home, away int) prediction.Prediction {
	return prediction.Prediction{ParticipantID: "u1", FixtureID: "f1", HomeGoals: &home, AwayGoals: &away}
}

func corrected(home, away int, scorers ...string) fixture.Fixture {
	return fixture.Fixture{
		ID:          "f1",
		HomeTeam:    "Persija",
		AwayTeam:    "Persib",
		FinalResult: &fixture.Result{HomeGoals: home, AwayGoals: away, GoalScorers: scorers},
	}
}

func TestScore_ExactResult(t *testing.T) {
	t.Parallel()

	got, err := Score(predicted(2, 1), corrected(2, 1), unitRules())
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	want := prediction.Breakdown{
		CorrectOutcome:        1,
		CorrectGoalsByTeam:    2,
		CorrectGoalDifference: 1,
		CorrectResult:         1,
		OutcomeCorrect:        true,
		Total:                 5,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected breakdown (-want +got):\n%s", diff)
	}
}

func TestScore_WrongOutcomeScoresNothing(t *testing.T) {
	t.Parallel()

	got, err := Score(predicted(1, 1), corrected(2, 0), unitRules())
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if diff := cmp.Diff(prediction.Breakdown{}, got); diff != "" {
		t.Fatalf("expected empty breakdown (-want +got):\n%s", diff)
	}
}

func TestScore_RulesFireIndependently(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pred       prediction.Prediction
		fx         fixture.Fixture
		wantTotal  int
		wantFields prediction.Breakdown
	}{
		{
			name:      "same goal difference different score",
			pred:      predicted(3, 1),
			fx:        corrected(2, 0),
			wantTotal: 2,
			wantFields: prediction.Breakdown{
				CorrectOutcome:        1,
				CorrectGoalDifference: 1,
				OutcomeCorrect:        true,
			},
		},
		{
			name:      "one side correct wrong outcome",
			pred:      predicted(0, 1),
			fx:        corrected(0, 0),
			wantTotal: 1,
			wantFields: prediction.Breakdown{
				CorrectGoalsByTeam: 1,
			},
		},
		{
			name:      "draw with different score",
			pred:      predicted(1, 1),
			fx:        corrected(2, 2),
			wantTotal: 2,
			wantFields: prediction.Breakdown{
				CorrectOutcome:        1,
				CorrectGoalDifference: 1,
				OutcomeCorrect:        true,
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Score(tc.pred, tc.fx, unitRules())
			if err != nil {
				t.Fatalf("score: %v", err)
			}
			if got.Total != tc.wantTotal {
				t.Fatalf("unexpected total: got=%d want=%d", got.Total, tc.wantTotal)
			}
			tc.wantFields.Total = tc.wantTotal
			if diff := cmp.Diff(tc.wantFields, got); diff != "" {
				t.Fatalf("unexpected breakdown (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScore_GoalScorerTier(t *testing.T) {
	t.Parallel()

	fx := corrected(1, 0, "Rizky Ridho")
	fx.ShouldPredictGoalScorer = true

	pred := predicted(1, 0)
	pred.GoalScorer = &prediction.Scorer{PlayerID: "p1", Name: "rizky ridho", Position: player.PositionDefender}

	got, err := Score(pred, fx, unitRules())
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if got.CorrectGoalScorer != 3 {
		t.Fatalf("unexpected scorer points: got=%d want=3", got.CorrectGoalScorer)
	}
	if got.Total != 8 {
		t.Fatalf("unexpected total: got=%d want=8", got.Total)
	}

	pred.GoalScorer.Position = player.PositionUnknown
	got, err = Score(pred, fx, unitRules())
	if err != nil {
		t.Fatalf("unknown position must not fail: %v", err)
	}
	if got.CorrectGoalScorer != 0 {
		t.Fatalf("unknown position must resolve to 0, got %d", got.CorrectGoalScorer)
	}

	fx.ShouldPredictGoalScorer = false
	pred.GoalScorer.Position = player.PositionDefender
	got, err = Score(pred, fx, unitRules())
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if got.CorrectGoalScorer != 0 {
		t.Fatalf("scorer must be ignored when the fixture does not ask for one, got %d", got.CorrectGoalScorer)
	}
}

func TestScore_UnpredictedShortCircuits(t *testing.T) {
	t.Parallel()

	got, err := Score(prediction.Prediction{ParticipantID: "u1", FixtureID: "f1"}, corrected(0, 0), unitRules())
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if got.Total != 0 || got.OutcomeCorrect {
		t.Fatalf("unpredicted prediction must score zero, got %+v", got)
	}
}

func TestScore_WithoutResultIsIncomplete(t *testing.T) {
	t.Parallel()

	_, err := Score(predicted(1, 0), fixture.Fixture{ID: "f1"}, unitRules())
	if !errors.Is(err, ErrIncompleteData) {
		t.Fatalf("expected ErrIncompleteData, got %v", err)
	}
}

func TestScore_ExactMatchFiresAllBaseRules(t *testing.T) {
	t.Parallel()

	faker := gofakeit.New(20260214)
	for i := 0; i < 200; i++ {
		home := faker.IntRange(0, 9)
		away := faker.IntRange(0, 9)
		rules := RuleSet{
			CorrectOutcome:        faker.IntRange(1, 3),
			CorrectResult:         faker.IntRange(0, 5),
			CorrectGoalDifference: faker.IntRange(0, 3),
			CorrectGoalsByTeam:    faker.IntRange(0, 3),
		}

		got, err := Score(predicted(home, away), corrected(home, away), rules)
		if err != nil {
			t.Fatalf("score %d-%d: %v", home, away, err)
		}
		sum := got.CorrectResult + got.CorrectOutcome + got.CorrectGoalDifference + got.CorrectGoalsByTeam
		if sum <= 0 {
			t.Fatalf("exact match %d-%d produced no base points: %+v", home, away, got)
		}
		want := rules.CorrectOutcome + 2*rules.CorrectGoalsByTeam + rules.CorrectGoalDifference + rules.CorrectResult
		if got.Total != want {
			t.Fatalf("unexpected total for %d-%d: got=%d want=%d", home, away, got.Total, want)
		}
	}
}
