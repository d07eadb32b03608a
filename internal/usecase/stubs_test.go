package usecase

import (
	"context"
	"io"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/chip"
	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/gameweek"
	"github.com/riskibarqy/prediction-league/internal/domain/league"
	"github.com/riskibarqy/prediction-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
)

var (
	testStart    = time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	testDeadline = testStart.Add(2 * time.Hour)
	testKickoff  = testDeadline
)

type stubLeagueRepository struct {
	mu       sync.Mutex
	byID     map[string]league.League
	replaces int
	listErr  error
}

func newStubLeagueRepository(items ...league.League) *stubLeagueRepository {
	repo := &stubLeagueRepository{byID: make(map[string]league.League, len(items))}
	for _, item := range items {
		repo.byID[item.ID] = item.Clone()
	}
	return repo
}

func (r *stubLeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]league.League, 0, len(r.byID))
	for _, item := range r.byID {
		out = append(out, item.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubLeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byID[leagueID]
	if !ok {
		return league.League{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *stubLeagueRepository) Create(_ context.Context, item league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[item.ID] = item.Clone()
	return nil
}

func (r *stubLeagueRepository) Replace(_ context.Context, item league.League, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[item.ID]
	if !ok || current.Version != expectedVersion {
		return league.ErrVersionConflict
	}
	r.byID[item.ID] = item.Clone()
	r.replaces++
	return nil
}

func (r *stubLeagueRepository) stored(leagueID string) league.League {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[leagueID].Clone()
}

type stubIDGenerator struct {
	mu   sync.Mutex
	next int
}

func (g *stubIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return "id-" + strconv.Itoa(g.next), nil
}

type enqueuedJob struct {
	path    string
	payload any
	dedupID string
}

type stubJobQueue struct {
	mu   sync.Mutex
	jobs []enqueuedJob
	err  error
}

func (q *stubJobQueue) Enqueue(_ context.Context, path string, payload any, _ time.Duration, deduplicationID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, enqueuedJob{path: path, payload: payload, dedupID: deduplicationID})
	return q.err
}

type stubRecorder struct {
	mu       sync.Mutex
	statuses []string
	scored   int
}

func (r *stubRecorder) ObserveCorrection(status string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
}

func (r *stubRecorder) AddScoredPredictions(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scored += n
}

type stubExporter struct {
	leagueName string
	rows       []leaguestanding.Standing
}

func (e *stubExporter) WriteStandings(w io.Writer, leagueName string, standings []leaguestanding.Standing) error {
	e.leagueName = leagueName
	e.rows = standings
	_, err := io.WriteString(w, "xlsx")
	return err
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func intPtr(v int) *int {
	return &v
}

// testRules awards one point for each base rule and small, distinct bonus
// values so assertions can tell categories apart.
func testRules() scoring.RuleSet {
	return scoring.RuleSet{
		CorrectOutcome:              1,
		CorrectResult:               1,
		CorrectGoalDifference:       1,
		CorrectGoalsByTeam:          1,
		CorrectGoalScorerDefender:   3,
		CorrectGoalScorerMidfielder: 2,
		CorrectGoalScorerForward:    1,
		FirstTeamToScore:            1,
		GoalFest:                    2,
		UnderdogBonus:               3,
		OddsBonus3To4:               1,
		OddsBonus4To6:               2,
		OddsBonus6To10:              3,
		OddsBonus10Plus:             4,
	}
}

// testLeague has admin u1 and participants u2, u3, one open round with two
// fixtures and no predictions.
func testLeague() league.League {
	return league.League{
		ID:            "lg-1",
		Name:          "Office League",
		AdminUserID:   "u1",
		Version:       1,
		RuleSet:       testRules(),
		ChipAllowance: chip.DefaultAllowance(),
		Participants: []league.Participant{
			{UserID: "u1", DisplayName: "Ann"},
			{UserID: "u2", DisplayName: "Bo"},
			{UserID: "u3", DisplayName: "Cy"},
		},
		GameWeeks: []gameweek.GameWeek{{
			Round:    1,
			StartsAt: testStart,
			Deadline: testDeadline,
			Fixtures: []fixture.Fixture{
				{ID: "f1", HomeTeam: "Arsenal", AwayTeam: "Chelsea", KickoffAt: testKickoff, Odds: fixture.Odds{Home: 2.1, Draw: 3.4, Away: 4.5}},
				{ID: "f2", HomeTeam: "Everton", AwayTeam: "Fulham", KickoffAt: testKickoff.Add(2 * time.Hour), Odds: fixture.Odds{Home: 1.8, Draw: 3.6, Away: 6.5}},
			},
		}},
	}
}
