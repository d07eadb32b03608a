package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/gameweek"
	"github.com/riskibarqy/prediction-league/internal/domain/player"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
)

func TestPredictionService_SubmitPredictions_Upserts(t *testing.T) {
	t.Parallel()

	repo := newStubLeagueRepository(testLeague())
	svc := NewPredictionService(repo)
	svc.now = fixedClock(testStart.Add(30 * time.Minute))
	ctx := context.Background()

	input := SubmitPredictionsInput{
		LeagueID: "lg-1",
		UserID:   "u2",
		Round:    1,
		Items: []PredictionInput{
			{FixtureID: "f1", HomeGoals: intPtr(1), AwayGoals: intPtr(0), FirstTeamToScore: fixture.SideHome},
			{FixtureID: "f2", HomeGoals: intPtr(2), AwayGoals: intPtr(2)},
		},
	}
	if _, err := svc.SubmitPredictions(ctx, input); err != nil {
		t.Fatalf("submit predictions: %v", err)
	}

	input.Items = []PredictionInput{{FixtureID: "f1", HomeGoals: intPtr(3), AwayGoals: intPtr(0)}}
	got, err := svc.SubmitPredictions(ctx, input)
	if err != nil {
		t.Fatalf("resubmit predictions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected prediction count: got=%d want=2", len(got))
	}

	week := repo.stored("lg-1").GameWeeks[0]
	p, _, ok := week.PredictionFor("u2", "f1")
	if !ok || *p.HomeGoals != 3 {
		t.Fatalf("resubmission must replace the earlier prediction: %+v", p)
	}
	if len(week.Predictions) != 2 {
		t.Fatalf("unexpected stored predictions: got=%d want=2", len(week.Predictions))
	}
}

func TestPredictionService_SubmitPredictions_Rejections(t *testing.T) {
	t.Parallel()

	scorerFixture := testLeague()
	scorerFixture.GameWeeks[0].Fixtures[0].ShouldPredictGoalScorer = true
	scorerFixture.GameWeeks[0].Fixtures[0].GoalScorerFromTeam = "Arsenal"

	earlyKickoff := testLeague()
	earlyKickoff.GameWeeks[0].Fixtures[1].KickoffAt = testStart.Add(10 * time.Minute)

	withResult := testLeague()
	withResult.GameWeeks[0].Fixtures[0].FinalResult = &fixture.Result{HomeGoals: 3, AwayGoals: 2}

	open := testStart.Add(30 * time.Minute)

	cases := []struct {
		name    string
		repo    *stubLeagueRepository
		now     time.Time
		userID  string
		item    PredictionInput
		wantErr error
	}{
		{name: "after deadline", repo: newStubLeagueRepository(testLeague()), now: testDeadline, userID: "u2", item: PredictionInput{FixtureID: "f1", HomeGoals: intPtr(1), AwayGoals: intPtr(0)}, wantErr: gameweek.ErrNotPredictable},
		{name: "before start", repo: newStubLeagueRepository(testLeague()), now: testStart.Add(-time.Minute), userID: "u2", item: PredictionInput{FixtureID: "f1", HomeGoals: intPtr(1), AwayGoals: intPtr(0)}, wantErr: gameweek.ErrNotPredictable},
		{name: "kicked off", repo: newStubLeagueRepository(earlyKickoff), now: open, userID: "u2", item: PredictionInput{FixtureID: "f2", HomeGoals: intPtr(1), AwayGoals: intPtr(0)}, wantErr: gameweek.ErrNotPredictable},
		{name: "result already stored", repo: newStubLeagueRepository(withResult), now: open, userID: "u2", item: PredictionInput{FixtureID: "f1", HomeGoals: intPtr(3), AwayGoals: intPtr(2)}, wantErr: gameweek.ErrNotPredictable},
		{name: "not joined", repo: newStubLeagueRepository(testLeague()), now: open, userID: "u9", item: PredictionInput{FixtureID: "f1", HomeGoals: intPtr(1), AwayGoals: intPtr(0)}, wantErr: ErrForbidden},
		{name: "half a score", repo: newStubLeagueRepository(testLeague()), now: open, userID: "u2", item: PredictionInput{FixtureID: "f1", HomeGoals: intPtr(1)}, wantErr: ErrInvalidInput},
		{name: "negative goals", repo: newStubLeagueRepository(testLeague()), now: open, userID: "u2", item: PredictionInput{FixtureID: "f1", HomeGoals: intPtr(-1), AwayGoals: intPtr(0)}, wantErr: ErrInvalidInput},
		{name: "unknown fixture", repo: newStubLeagueRepository(testLeague()), now: open, userID: "u2", item: PredictionInput{FixtureID: "f9", HomeGoals: intPtr(1), AwayGoals: intPtr(0)}, wantErr: ErrNotFound},
		{name: "scorer not requested", repo: newStubLeagueRepository(testLeague()), now: open, userID: "u2", item: PredictionInput{FixtureID: "f1", HomeGoals: intPtr(1), AwayGoals: intPtr(0), GoalScorer: &prediction.Scorer{Name: "Saka", Team: "Arsenal", Position: player.PositionForward}}, wantErr: ErrInvalidInput},
		{name: "scorer from wrong team", repo: newStubLeagueRepository(scorerFixture), now: open, userID: "u2", item: PredictionInput{FixtureID: "f1", HomeGoals: intPtr(1), AwayGoals: intPtr(0), GoalScorer: &prediction.Scorer{Name: "Palmer", Team: "Chelsea", Position: player.PositionMidfielder}}, wantErr: ErrInvalidInput},
	}

	for _, tc := range cases {
		svc := NewPredictionService(tc.repo)
		svc.now = fixedClock(tc.now)

		_, err := svc.SubmitPredictions(context.Background(), SubmitPredictionsInput{
			LeagueID: "lg-1",
			UserID:   tc.userID,
			Round:    1,
			Items:    []PredictionInput{tc.item},
		})
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
		if tc.repo.replaces != 0 {
			t.Fatalf("%s: rejected submission must not be stored", tc.name)
		}
	}
}

func TestPredictionService_SubmitPredictions_AcceptsRestrictedScorer(t *testing.T) {
	t.Parallel()

	l := testLeague()
	l.GameWeeks[0].Fixtures[0].ShouldPredictGoalScorer = true
	l.GameWeeks[0].Fixtures[0].GoalScorerFromTeam = "Arsenal"
	repo := newStubLeagueRepository(l)
	svc := NewPredictionService(repo)
	svc.now = fixedClock(testStart.Add(time.Minute))

	_, err := svc.SubmitPredictions(context.Background(), SubmitPredictionsInput{
		LeagueID: "lg-1",
		UserID:   "u3",
		Round:    1,
		Items: []PredictionInput{{
			FixtureID:  "f1",
			HomeGoals:  intPtr(2),
			AwayGoals:  intPtr(0),
			GoalScorer: &prediction.Scorer{PlayerID: "p7", Name: "Bukayo Saka", Team: "arsenal", Position: player.PositionForward},
		}},
	})
	if err != nil {
		t.Fatalf("submit predictions: %v", err)
	}

	mine, err := svc.ListMyPredictions(context.Background(), "lg-1", "u3", 1)
	if err != nil {
		t.Fatalf("list my predictions: %v", err)
	}
	if len(mine) != 1 || mine[0].GoalScorer == nil || mine[0].GoalScorer.PlayerID != "p7" {
		t.Fatalf("unexpected stored predictions: %+v", mine)
	}
}
