package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/prediction-league/internal/domain/chip"
	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/gameweek"
	"github.com/riskibarqy/prediction-league/internal/domain/league"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
	leaguemock "github.com/riskibarqy/prediction-league/internal/mocks/domain/league"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

var correctionTime = testKickoff.Add(3 * time.Hour)

func predict(participantID, fixtureID string, home, away int) prediction.Prediction {
	return prediction.Prediction{
		ParticipantID: participantID,
		FixtureID:     fixtureID,
		HomeGoals:     intPtr(home),
		AwayGoals:     intPtr(away),
		SubmittedAt:   testStart,
	}
}

func leagueWith(preds []prediction.Prediction, chips ...chip.Assignment) league.League {
	l := testLeague()
	l.GameWeeks[0].Predictions = preds
	l.Chips = chips
	return l
}

func newTestCorrectionService(repo league.Repository) (*CorrectionService, *stubJobQueue, *stubRecorder) {
	queue := &stubJobQueue{}
	recorder := &stubRecorder{}
	svc := NewCorrectionService(repo, queue, recorder, logging.NewNop())
	svc.now = fixedClock(correctionTime)
	return svc, queue, recorder
}

func correctInput(fixtureID string, home, away int) CorrectFixtureInput {
	return CorrectFixtureInput{
		LeagueID:  "lg-1",
		UserID:    "u1",
		Round:     1,
		FixtureID: fixtureID,
		Result:    fixture.Result{HomeGoals: home, AwayGoals: away},
	}
}

func standingPoints(l league.League) map[string]int {
	out := make(map[string]int, len(l.Standings))
	for _, s := range l.Standings {
		out[s.ParticipantID] = s.Points
	}
	return out
}

func pointsOf(t *testing.T, l league.League, participantID, fixtureID string) prediction.Breakdown {
	t.Helper()

	week, _, ok := l.GameWeek(1)
	if !ok {
		t.Fatalf("round 1 missing")
	}
	p, _, ok := week.PredictionFor(participantID, fixtureID)
	if !ok || p.Points == nil {
		t.Fatalf("no points for participant=%s fixture=%s", participantID, fixtureID)
	}
	return *p.Points
}

func TestCorrectionService_CorrectFixture_ScoresAndRebuildsStandings(t *testing.T) {
	t.Parallel()

	repo := newStubLeagueRepository(leagueWith([]prediction.Prediction{
		predict("u1", "f1", 2, 1),
		predict("u2", "f1", 1, 0),
		predict("u3", "f1", 1, 1),
	}))
	svc, queue, recorder := newTestCorrectionService(repo)

	got, err := svc.CorrectFixture(context.Background(), correctInput("f1", 2, 1))
	if err != nil {
		t.Fatalf("correct fixture: %v", err)
	}

	totals := make(map[string]int, len(got.Scored))
	for _, s := range got.Scored {
		totals[s.ParticipantID] = s.Breakdown.Total
	}
	if diff := cmp.Diff(map[string]int{"u1": 5, "u2": 2, "u3": 1}, totals); diff != "" {
		t.Fatalf("unexpected totals (-want +got):\n%s", diff)
	}

	stored := repo.stored("lg-1")
	if stored.Version != 2 {
		t.Fatalf("unexpected version: got=%d want=2", stored.Version)
	}
	order := []string{stored.Standings[0].ParticipantID, stored.Standings[1].ParticipantID, stored.Standings[2].ParticipantID}
	if diff := cmp.Diff([]string{"u1", "u2", "u3"}, order); diff != "" {
		t.Fatalf("unexpected standings order (-want +got):\n%s", diff)
	}
	if stored.Standings[0].CorrectResults != 1 {
		t.Fatalf("unexpected correct results: got=%d want=1", stored.Standings[0].CorrectResults)
	}
	if stored.GameWeeks[0].HasBeenCorrected {
		t.Fatalf("round must stay open while f2 has no result")
	}

	if len(queue.jobs) != 1 || queue.jobs[0].path != CorrectionCompletedJobPath {
		t.Fatalf("unexpected jobs: %+v", queue.jobs)
	}
	if queue.jobs[0].dedupID != "correction-lg-1-f1-v2" {
		t.Fatalf("unexpected dedup id: %s", queue.jobs[0].dedupID)
	}
	if diff := cmp.Diff([]string{"success"}, recorder.statuses); diff != "" {
		t.Fatalf("unexpected recorded statuses (-want +got):\n%s", diff)
	}
	if recorder.scored != 3 {
		t.Fatalf("unexpected scored count: got=%d want=3", recorder.scored)
	}
}

func TestCorrectionService_CorrectFixture_ReCorrectionDoesNotDoubleCount(t *testing.T) {
	t.Parallel()

	repo := newStubLeagueRepository(leagueWith([]prediction.Prediction{
		predict("u1", "f1", 2, 1),
		predict("u2", "f1", 0, 0),
	}))
	svc, _, _ := newTestCorrectionService(repo)
	ctx := context.Background()

	if _, err := svc.CorrectFixture(ctx, correctInput("f1", 1, 1)); err != nil {
		t.Fatalf("first correction: %v", err)
	}
	if _, err := svc.CorrectFixture(ctx, correctInput("f1", 2, 1)); err != nil {
		t.Fatalf("re-correction: %v", err)
	}
	if _, err := svc.CorrectFixture(ctx, correctInput("f1", 2, 1)); err != nil {
		t.Fatalf("repeated correction: %v", err)
	}

	points := standingPoints(repo.stored("lg-1"))
	if points["u1"] != 5 || points["u2"] != 0 {
		t.Fatalf("unexpected standings after re-correction: %+v", points)
	}
}

func TestCorrectionService_CorrectFixture_AcceptsSuggestions(t *testing.T) {
	t.Parallel()

	u1 := predict("u1", "f1", 2, 1)
	u1.FirstTeamToScore = fixture.SideHome
	repo := newStubLeagueRepository(leagueWith([]prediction.Prediction{u1, predict("u2", "f1", 1, 0)}))
	svc, _, _ := newTestCorrectionService(repo)

	input := correctInput("f1", 2, 1)
	input.Result.FirstTeamToScore = fixture.SideHome
	input.AcceptSuggestions = true

	if _, err := svc.CorrectFixture(context.Background(), input); err != nil {
		t.Fatalf("correct fixture: %v", err)
	}

	stored := repo.stored("lg-1")
	got := pointsOf(t, stored, "u1", "f1")
	if got.UnderdogBonus != 3 || got.FirstTeamToScore != 1 || got.Total != 9 {
		t.Fatalf("unexpected u1 breakdown: %+v", got)
	}
	if other := pointsOf(t, stored, "u2", "f1"); other.Total != 2 {
		t.Fatalf("unexpected u2 total: got=%d want=2", other.Total)
	}
}

func TestCorrectionService_CorrectFixture_RiskTakerDoublesOddsBonus(t *testing.T) {
	t.Parallel()

	repo := newStubLeagueRepository(leagueWith(
		[]prediction.Prediction{predict("u3", "f1", 0, 2)},
		chip.Assignment{ParticipantID: "u3", Kind: chip.KindRiskTaker, Round: 1, Scope: chip.ScopeRound},
	))
	svc, _, _ := newTestCorrectionService(repo)

	input := correctInput("f1", 0, 1)
	input.AcceptSuggestions = true
	if _, err := svc.CorrectFixture(context.Background(), input); err != nil {
		t.Fatalf("correct fixture: %v", err)
	}

	// outcome 1 + home goals 1 + odds tier 4-6 (2), risk taker +2.
	got := pointsOf(t, repo.stored("lg-1"), "u3", "f1")
	if got.OddsBonus != 2 || got.ChipBonus != 2 || got.Total != 6 {
		t.Fatalf("unexpected breakdown: %+v", got)
	}
}

func TestCorrectionService_CorrectFixture_ChipsAcrossTheRound(t *testing.T) {
	t.Parallel()

	repo := newStubLeagueRepository(leagueWith(
		[]prediction.Prediction{predict("u1", "f1", 2, 1), predict("u1", "f2", 1, 1)},
		chip.Assignment{ParticipantID: "u1", Kind: chip.KindDoubleUp, Round: 1, Scope: chip.ScopeRound},
		chip.Assignment{ParticipantID: "u1", Kind: chip.KindCleanSweep, Round: 1, Scope: chip.ScopeRound},
	))
	svc, _, _ := newTestCorrectionService(repo)
	ctx := context.Background()

	if _, err := svc.CorrectFixture(ctx, correctInput("f1", 2, 1)); err != nil {
		t.Fatalf("correct f1: %v", err)
	}
	if got := standingPoints(repo.stored("lg-1"))["u1"]; got != 10 {
		t.Fatalf("double up before the round is complete: got=%d want=10", got)
	}

	if _, err := svc.CorrectFixture(ctx, correctInput("f2", 1, 1)); err != nil {
		t.Fatalf("correct f2: %v", err)
	}
	stored := repo.stored("lg-1")
	if got := standingPoints(stored)["u1"]; got != 40 {
		t.Fatalf("clean sweep must double the round: got=%d want=40", got)
	}
	if !stored.GameWeeks[0].HasBeenCorrected || !stored.GameWeeks[0].HasEnded {
		t.Fatalf("round must be finalized once every fixture has a result")
	}

	if _, err := svc.CorrectFixture(ctx, correctInput("f2", 1, 1)); err != nil {
		t.Fatalf("re-correct f2: %v", err)
	}
	if got := standingPoints(repo.stored("lg-1"))["u1"]; got != 40 {
		t.Fatalf("chips compounded on re-correction: got=%d want=40", got)
	}
}

func TestCorrectionService_CorrectFixture_GoalFestWithoutPrediction(t *testing.T) {
	t.Parallel()

	repo := newStubLeagueRepository(leagueWith(
		[]prediction.Prediction{predict("u1", "f1", 0, 0)},
		chip.Assignment{ParticipantID: "u3", Kind: chip.KindGoalFest, Round: 1, Scope: chip.ScopeFixture, FixtureID: "f1"},
	))
	svc, _, _ := newTestCorrectionService(repo)

	if _, err := svc.CorrectFixture(context.Background(), correctInput("f1", 3, 2)); err != nil {
		t.Fatalf("correct fixture: %v", err)
	}

	if got := standingPoints(repo.stored("lg-1"))["u3"]; got != 5 {
		t.Fatalf("goal fest on a 3-2 fixture: got=%d want=5", got)
	}
}

func TestCorrectionService_CorrectFixture_InvalidOverrideStoresNothing(t *testing.T) {
	t.Parallel()

	repo := newStubLeagueRepository(leagueWith([]prediction.Prediction{predict("u1", "f1", 2, 1)}))
	svc, queue, recorder := newTestCorrectionService(repo)

	input := correctInput("f1", 2, 1)
	input.Overrides = map[string]scoring.Bonuses{"u1": {UnderdogBonus: 99}}

	_, err := svc.CorrectFixture(context.Background(), input)
	if !errors.Is(err, scoring.ErrInvalidBonus) {
		t.Fatalf("expected ErrInvalidBonus, got %v", err)
	}
	if stored := repo.stored("lg-1"); stored.Version != 1 || stored.GameWeeks[0].Fixtures[0].FinalResult != nil {
		t.Fatalf("failed correction must not be stored: version=%d", stored.Version)
	}
	if len(queue.jobs) != 0 {
		t.Fatalf("failed correction must not notify")
	}
	if diff := cmp.Diff([]string{"failed"}, recorder.statuses); diff != "" {
		t.Fatalf("unexpected recorded statuses (-want +got):\n%s", diff)
	}
}

func TestCorrectionService_CorrectFixture_Rejections(t *testing.T) {
	t.Parallel()

	forceEnded := testLeague()
	forceEnded.GameWeeks[0] = forceEnded.GameWeeks[0].ForceEnd(testStart)

	tests := []struct {
		name    string
		league  league.League
		at      time.Time
		mutate  func(*CorrectFixtureInput)
		wantErr error
	}{
		{name: "not admin", league: testLeague(), mutate: func(in *CorrectFixtureInput) { in.UserID = "u2" }, wantErr: ErrForbidden},
		{name: "unknown round", league: testLeague(), mutate: func(in *CorrectFixtureInput) { in.Round = 7 }, wantErr: ErrNotFound},
		{name: "unknown fixture", league: testLeague(), mutate: func(in *CorrectFixtureInput) { in.FixtureID = "f9" }, wantErr: ErrNotFound},
		{name: "negative goals", league: testLeague(), mutate: func(in *CorrectFixtureInput) { in.Result.HomeGoals = -1 }, wantErr: fixture.ErrInvalidResult},
		{name: "force ended round", league: forceEnded, mutate: func(*CorrectFixtureInput) {}, wantErr: gameweek.ErrNotCorrectable},
		{name: "round still predictable", league: testLeague(), at: testStart.Add(30 * time.Minute), mutate: func(*CorrectFixtureInput) {}, wantErr: gameweek.ErrNotCorrectable},
		{name: "round not started", league: testLeague(), at: testStart.Add(-time.Hour), mutate: func(*CorrectFixtureInput) {}, wantErr: gameweek.ErrNotCorrectable},
	}

	for _, tc := range tests {
		repo := newStubLeagueRepository(tc.league)
		svc, _, _ := newTestCorrectionService(repo)
		if !tc.at.IsZero() {
			svc.now = fixedClock(tc.at)
		}
		input := correctInput("f1", 1, 0)
		tc.mutate(&input)

		_, err := svc.CorrectFixture(context.Background(), input)
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
		if repo.replaces != 0 {
			t.Fatalf("%s: rejected correction must not write, replaces=%d", tc.name, repo.replaces)
		}
	}
}

func TestCorrectionService_CorrectFixture_VersionConflictUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := leaguemock.NewRepository(t)
	svc, queue, _ := newTestCorrectionService(repo)

	repo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "lg-1").
		Return(leagueWith([]prediction.Prediction{predict("u1", "f1", 2, 1)}), true, nil).
		Once()
	repo.
		On("Replace", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), mock.MatchedBy(func(l league.League) bool { return l.Version == 2 }), int64(1)).
		Return(league.ErrVersionConflict).
		Once()

	_, err := svc.CorrectFixture(ctx, correctInput("f1", 2, 1))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(queue.jobs) != 0 {
		t.Fatalf("conflicting correction must not notify")
	}
}

func TestCorrectionService_SuggestBonuses_DoesNotStore(t *testing.T) {
	t.Parallel()

	repo := newStubLeagueRepository(leagueWith([]prediction.Prediction{
		predict("u1", "f1", 3, 2),
		predict("u2", "f1", 1, 0),
	}))
	svc, _, _ := newTestCorrectionService(repo)

	got, err := svc.SuggestBonuses(context.Background(), correctInput("f1", 3, 2))
	if err != nil {
		t.Fatalf("suggest bonuses: %v", err)
	}

	byParticipant := make(map[string]scoring.Bonuses, len(got))
	for _, s := range got {
		byParticipant[s.ParticipantID] = s.Bonuses
	}
	want := map[string]scoring.Bonuses{
		"u1": {GoalFest: 2, UnderdogBonus: 3},
		"u2": {},
	}
	if diff := cmp.Diff(want, byParticipant); diff != "" {
		t.Fatalf("unexpected suggestions (-want +got):\n%s", diff)
	}
	if repo.replaces != 0 {
		t.Fatalf("suggestions must not write the league")
	}
}

func TestNewCorrectionSession_IsolatesInput(t *testing.T) {
	t.Parallel()

	input := correctInput("f1", 2, 1)
	input.Result.GoalScorers = []string{"Saka", "Palmer"}
	input.Overrides = map[string]scoring.Bonuses{"u2": {FirstTeamToScore: 1}}

	session, err := NewCorrectionSession(input, correctionTime)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	input.Result.GoalScorers[0] = "changed"
	input.Overrides["u2"] = scoring.Bonuses{}
	result := session.Result()
	result.GoalScorers[1] = "changed"

	if diff := cmp.Diff([]string{"Saka", "Palmer"}, session.Result().GoalScorers); diff != "" {
		t.Fatalf("session result leaked (-want +got):\n%s", diff)
	}
	if got := session.BonusesFor("u2", nil); got.FirstTeamToScore != 1 {
		t.Fatalf("session overrides leaked: %+v", got)
	}
	if got := session.BonusesFor("u3", map[string]scoring.Bonuses{"u3": {GoalFest: 2}}); !got.IsZero() {
		t.Fatalf("suggestions must not apply unless accepted: %+v", got)
	}
}

func TestCorrectionService_SuggestBonuses_AdminOnly(t *testing.T) {
	t.Parallel()

	repo := newStubLeagueRepository(leagueWith([]prediction.Prediction{predict("u2", "f1", 3, 2)}))
	svc, _, _ := newTestCorrectionService(repo)

	input := correctInput("f1", 3, 2)
	input.UserID = "u2"
	if _, err := svc.SuggestBonuses(context.Background(), input); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
