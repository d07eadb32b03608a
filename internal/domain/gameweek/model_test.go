package gameweek

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
)

var (
	start    = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	deadline = start.Add(2 * time.Hour)
)

func sampleWeek() GameWeek {
	return GameWeek{
		Round:    1,
		StartsAt: start,
		Deadline: deadline,
		Fixtures: []fixture.Fixture{
			{ID: "f1", HomeTeam: "Arsenal", AwayTeam: "Chelsea", KickoffAt: deadline},
			{ID: "f2", HomeTeam: "Everton", AwayTeam: "Fulham", KickoffAt: deadline.Add(time.Hour)},
		},
	}
}

func withResults(g GameWeek, ids ...string) GameWeek {
	fixtures := append([]fixture.Fixture(nil), g.Fixtures...)
	for i := range fixtures {
		for _, id := range ids {
			if fixtures[i].ID == id {
				fixtures[i].FinalResult = &fixture.Result{HomeGoals: 1, AwayGoals: 0}
			}
		}
	}
	g.Fixtures = fixtures
	return g
}

func TestGameWeek_State(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		week GameWeek
		now  time.Time
		want State
	}{
		{name: "before start", week: sampleWeek(), now: start.Add(-time.Minute), want: StateUpcoming},
		{name: "at start", week: sampleWeek(), now: start, want: StatePredictable},
		{name: "at deadline", week: sampleWeek(), now: deadline, want: StateLocked},
		{name: "partially corrected", week: withResults(sampleWeek(), "f1"), now: deadline.Add(time.Hour), want: StateLocked},
		{name: "fully corrected", week: withResults(sampleWeek(), "f1", "f2"), now: deadline.Add(time.Hour), want: StateCorrected},
		{name: "force ended", week: sampleWeek().ForceEnd(start), now: start, want: StateEnded},
	}

	for _, tc := range tests {
		if got := tc.week.State(tc.now); got != tc.want {
			t.Fatalf("%s: unexpected state: got=%s want=%s", tc.name, got, tc.want)
		}
	}
}

func TestGameWeek_Finalize(t *testing.T) {
	t.Parallel()

	now := deadline.Add(3 * time.Hour)

	partial := withResults(sampleWeek(), "f1").Finalize(now)
	if partial.HasBeenCorrected || partial.HasEnded {
		t.Fatalf("partial correction must not end the round: %+v", partial)
	}

	full := withResults(sampleWeek(), "f1", "f2").Finalize(now)
	if !full.HasBeenCorrected || !full.HasEnded {
		t.Fatalf("full correction must end the round: corrected=%v ended=%v", full.HasBeenCorrected, full.HasEnded)
	}
	if full.CorrectedAt == nil || !full.CorrectedAt.Equal(now) {
		t.Fatalf("unexpected corrected at: %v", full.CorrectedAt)
	}
	if full.State(now) != StateEnded {
		t.Fatalf("unexpected state after finalize: %s", full.State(now))
	}
}

func TestGameWeek_ForceEndBlocksCorrection(t *testing.T) {
	t.Parallel()

	ended := sampleWeek().ForceEnd(start)
	if !ended.ForceEnded || ended.AcceptsCorrections(deadline.Add(time.Hour)) {
		t.Fatalf("force ended round must reject corrections: %+v", ended)
	}
	if ended.AcceptsPredictions(start.Add(time.Minute)) {
		t.Fatalf("force ended round must reject predictions")
	}

	corrected := withResults(sampleWeek(), "f1", "f2").Finalize(deadline)
	again := corrected.ForceEnd(deadline.Add(time.Hour))
	if again.ForceEnded {
		t.Fatalf("force end must leave an ended round untouched")
	}
	if !again.AcceptsCorrections(deadline.Add(2 * time.Hour)) {
		t.Fatalf("corrected round must still accept re-corrections")
	}
}

func TestGameWeek_AcceptsCorrections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		week GameWeek
		now  time.Time
		want bool
	}{
		{name: "upcoming", week: sampleWeek(), now: start.Add(-time.Minute), want: false},
		{name: "predictable", week: sampleWeek(), now: start.Add(time.Minute), want: false},
		{name: "locked at deadline", week: sampleWeek(), now: deadline, want: true},
		{name: "partially corrected", week: withResults(sampleWeek(), "f1"), now: deadline.Add(time.Hour), want: true},
		{name: "ended after correction", week: withResults(sampleWeek(), "f1", "f2").Finalize(deadline.Add(time.Hour)), now: deadline.Add(2 * time.Hour), want: true},
		{name: "force ended", week: sampleWeek().ForceEnd(start), now: deadline.Add(time.Hour), want: false},
	}

	for _, tc := range tests {
		if got := tc.week.AcceptsCorrections(tc.now); got != tc.want {
			t.Fatalf("%s: got=%v want=%v", tc.name, got, tc.want)
		}
	}
}

func TestGameWeek_AcceptsChips(t *testing.T) {
	t.Parallel()

	early := sampleWeek()
	early.Deadline = deadline.Add(2 * time.Hour)
	live := deadline.Add(30 * time.Minute)

	tests := []struct {
		name      string
		week      GameWeek
		now       time.Time
		fixtureID string
		want      bool
	}{
		{name: "open round", week: sampleWeek(), now: start.Add(time.Minute), want: true},
		{name: "past deadline", week: sampleWeek(), now: deadline, want: false},
		{name: "designated fixture not started", week: early, now: live, fixtureID: "f2", want: true},
		{name: "designated fixture kicked off", week: early, now: live, fixtureID: "f1", want: false},
		{name: "round scoped while a fixture is live", week: early, now: live, want: true},
		{name: "result already stored", week: withResults(early, "f1"), now: live, fixtureID: "f2", want: false},
		{name: "ended", week: sampleWeek().ForceEnd(start), now: start.Add(time.Minute), want: false},
	}

	for _, tc := range tests {
		if got := tc.week.AcceptsChips(tc.now, tc.fixtureID); got != tc.want {
			t.Fatalf("%s: got=%v want=%v", tc.name, got, tc.want)
		}
	}
}

func TestGameWeek_Validate(t *testing.T) {
	t.Parallel()

	if err := sampleWeek().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noFixtures := sampleWeek()
	noFixtures.Fixtures = nil
	duplicate := sampleWeek()
	duplicate.Fixtures[1].ID = "f1"
	early := sampleWeek()
	early.Fixtures[0].KickoffAt = start.Add(-time.Hour)
	inverted := sampleWeek()
	inverted.Deadline = start.Add(-time.Minute)

	for name, week := range map[string]GameWeek{
		"no fixtures":       noFixtures,
		"duplicate fixture": duplicate,
		"early kickoff":     early,
		"inverted deadline": inverted,
	} {
		if err := week.Validate(); !errors.Is(err, ErrInvalidRound) {
			t.Fatalf("%s: expected ErrInvalidRound, got %v", name, err)
		}
	}
}
