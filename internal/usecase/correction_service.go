package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/chip"
	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/gameweek"
	"github.com/riskibarqy/prediction-league/internal/domain/league"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
)

const CorrectionCompletedJobPath = "/v1/internal/jobs/correction-completed"

type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

// CorrectionRecorder receives correction metrics.
type CorrectionRecorder interface {
	ObserveCorrection(status string, elapsed time.Duration)
	AddScoredPredictions(n int)
}

type noopCorrectionRecorder struct{}

func (noopCorrectionRecorder) ObserveCorrection(string, time.Duration) {}
func (noopCorrectionRecorder) AddScoredPredictions(int)                {}

type CorrectionCompletedPayload struct {
	LeagueID         string    `json:"league_id"`
	Round            int       `json:"round"`
	FixtureID        string    `json:"fixture_id"`
	Version          int64     `json:"version"`
	ScoredCount      int       `json:"scored_count"`
	RoundCorrected   bool      `json:"round_corrected"`
	CorrectedAt      time.Time `json:"corrected_at"`
	CorrectedBy      string    `json:"corrected_by"`
	HomeGoals        int       `json:"home_goals"`
	AwayGoals        int       `json:"away_goals"`
	FirstTeamToScore string    `json:"first_team_to_score,omitempty"`
}

type CorrectionResult struct {
	League      league.League
	GameWeek    gameweek.GameWeek
	Fixture     fixture.Fixture
	Scored      []prediction.Scored
	Suggestions []scoring.Suggestion
}

type CorrectionService struct {
	leagueRepo league.Repository
	queue      JobQueue
	recorder   CorrectionRecorder
	logger     *logging.Logger
	now        func() time.Time
}

func NewCorrectionService(
	leagueRepo league.Repository,
	queue JobQueue,
	recorder CorrectionRecorder,
	logger *logging.Logger,
) *CorrectionService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if recorder == nil {
		recorder = noopCorrectionRecorder{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &CorrectionService{
		leagueRepo: leagueRepo,
		queue:      queue,
		recorder:   recorder,
		logger:     logger,
		now:        time.Now,
	}
}

// SuggestBonuses previews the context-dependent bonuses for a proposed result
// without storing anything.
func (s *CorrectionService) SuggestBonuses(ctx context.Context, input CorrectFixtureInput) ([]scoring.Suggestion, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CorrectionService.SuggestBonuses")
	defer span.End()

	session, err := NewCorrectionSession(input, s.now())
	if err != nil {
		return nil, err
	}

	item, week, fx, err := s.loadTarget(ctx, session)
	if err != nil {
		return nil, err
	}

	return scoring.SuggestBonuses(session.Apply(fx), week.Predictions, item.RuleSet)
}

// CorrectFixture stores the official result of one fixture, scores every
// prediction for it, re-derives the round's chips and rebuilds standings.
// The league document is written once; on any error nothing is stored.
func (s *CorrectionService) CorrectFixture(ctx context.Context, input CorrectFixtureInput) (CorrectionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CorrectionService.CorrectFixture")
	defer span.End()

	started := time.Now()
	out, err := s.correctFixture(ctx, input)
	status := "success"
	if err != nil {
		status = "failed"
	}
	s.recorder.ObserveCorrection(status, time.Since(started))
	if err != nil {
		return CorrectionResult{}, err
	}
	s.recorder.AddScoredPredictions(len(out.Scored))

	s.notifyCompleted(ctx, out, input.UserID)
	return out, nil
}

func (s *CorrectionService) correctFixture(ctx context.Context, input CorrectFixtureInput) (CorrectionResult, error) {
	session, err := NewCorrectionSession(input, s.now())
	if err != nil {
		return CorrectionResult{}, err
	}

	item, week, fx, err := s.loadTarget(ctx, session)
	if err != nil {
		return CorrectionResult{}, err
	}

	fx = session.Apply(fx)
	for i := range week.Fixtures {
		if week.Fixtures[i].ID == fx.ID {
			week.Fixtures[i] = fx
		}
	}

	suggestions, err := scoring.SuggestBonuses(fx, week.Predictions, item.RuleSet)
	if err != nil {
		return CorrectionResult{}, err
	}
	suggested := make(map[string]scoring.Bonuses, len(suggestions))
	for _, sug := range suggestions {
		suggested[sug.ParticipantID] = sug.Bonuses
	}

	predictions := withGoalFestPlaceholders(week, fx.ID, item.ChipsFor, item.Participants, session.CorrectedAt())
	for i, p := range predictions {
		if p.FixtureID != fx.ID {
			continue
		}
		base, err := scoring.Score(p, fx, item.RuleSet)
		if err != nil {
			return CorrectionResult{}, fmt.Errorf("score participant=%s fixture=%s: %w", p.ParticipantID, fx.ID, err)
		}
		bonuses := session.BonusesFor(p.ParticipantID, suggested)
		if err := scoring.ValidateBonuses(bonuses, item.RuleSet); err != nil {
			return CorrectionResult{}, fmt.Errorf("participant=%s: %w", p.ParticipantID, err)
		}
		points := scoring.WithBonuses(base, bonuses)
		predictions[i].Points = &points
	}

	week.Predictions = applyRoundChips(week, predictions, item.ChipsFor)
	week = week.Finalize(session.CorrectedAt())

	for i := range item.GameWeeks {
		if item.GameWeeks[i].Round == week.Round {
			item.GameWeeks[i] = week
		}
	}
	item.Standings = item.RebuildStandings()

	stored, err := replaceLeague(ctx, s.leagueRepo, item, session.CorrectedAt())
	if err != nil {
		return CorrectionResult{}, err
	}

	scored := make([]prediction.Scored, 0)
	for _, p := range week.Predictions {
		if p.FixtureID == fx.ID && p.Points != nil {
			scored = append(scored, prediction.Scored{ParticipantID: p.ParticipantID, FixtureID: p.FixtureID, Breakdown: *p.Points})
		}
	}

	return CorrectionResult{
		League:      stored,
		GameWeek:    week,
		Fixture:     fx,
		Scored:      scored,
		Suggestions: suggestions,
	}, nil
}

func (s *CorrectionService) loadTarget(ctx context.Context, session CorrectionSession) (league.League, gameweek.GameWeek, fixture.Fixture, error) {
	item, err := loadLeague(ctx, s.leagueRepo, session.LeagueID())
	if err != nil {
		return league.League{}, gameweek.GameWeek{}, fixture.Fixture{}, err
	}
	if err := requireAdmin(item, session.CorrectedBy()); err != nil {
		return league.League{}, gameweek.GameWeek{}, fixture.Fixture{}, err
	}

	week, _, ok := item.GameWeek(session.Round())
	if !ok {
		return league.League{}, gameweek.GameWeek{}, fixture.Fixture{}, fmt.Errorf("%w: league=%s round=%d", ErrNotFound, item.ID, session.Round())
	}
	if at := session.CorrectedAt(); !week.AcceptsCorrections(at) {
		return league.League{}, gameweek.GameWeek{}, fixture.Fixture{}, fmt.Errorf("%w: round=%d state=%s", gameweek.ErrNotCorrectable, week.Round, week.State(at))
	}

	fx, _, ok := week.Fixture(session.FixtureID())
	if !ok {
		return league.League{}, gameweek.GameWeek{}, fixture.Fixture{}, fmt.Errorf("%w: fixture=%s round=%d", ErrNotFound, session.FixtureID(), week.Round)
	}

	week.Fixtures = append([]fixture.Fixture(nil), week.Fixtures...)
	week.Predictions = append([]prediction.Prediction(nil), week.Predictions...)

	return item, week, fx, nil
}

func (s *CorrectionService) notifyCompleted(ctx context.Context, out CorrectionResult, correctedBy string) {
	fx := out.Fixture
	if fx.FinalResult == nil {
		return
	}

	payload := CorrectionCompletedPayload{
		LeagueID:         out.League.ID,
		Round:            out.GameWeek.Round,
		FixtureID:        fx.ID,
		Version:          out.League.Version,
		ScoredCount:      len(out.Scored),
		RoundCorrected:   out.GameWeek.HasBeenCorrected,
		CorrectedBy:      correctedBy,
		HomeGoals:        fx.FinalResult.HomeGoals,
		AwayGoals:        fx.FinalResult.AwayGoals,
		FirstTeamToScore: string(fx.FinalResult.FirstTeamToScore),
	}
	if fx.CorrectedAt != nil {
		payload.CorrectedAt = *fx.CorrectedAt
	}

	dedupID := "correction-" + out.League.ID + "-" + fx.ID + "-v" + strconv.FormatInt(out.League.Version, 10)
	if err := s.queue.Enqueue(ctx, CorrectionCompletedJobPath, payload, 0, dedupID); err != nil {
		s.logger.WarnContext(ctx, "enqueue correction completed failed", "league_id", out.League.ID, "fixture_id", fx.ID, "error", err)
	}
}

// withGoalFestPlaceholders adds an unpredicted entry for every participant who
// designated fx with Goal Fest but left it unpredicted, so the chip has a
// breakdown to land on.
func withGoalFestPlaceholders(
	week gameweek.GameWeek,
	fixtureID string,
	chipsFor func(participantID string, round int) []chip.Assignment,
	participants []league.Participant,
	now time.Time,
) []prediction.Prediction {
	out := append([]prediction.Prediction(nil), week.Predictions...)
	for _, p := range participants {
		if _, _, exists := week.PredictionFor(p.UserID, fixtureID); exists {
			continue
		}
		for _, a := range chipsFor(p.UserID, week.Round) {
			if a.Kind == chip.KindGoalFest && a.Covers(fixtureID) {
				out = append(out, prediction.Prediction{ParticipantID: p.UserID, FixtureID: fixtureID, SubmittedAt: now})
				break
			}
		}
	}
	return out
}

// applyRoundChips re-derives chip effects for every participant of the round
// from their stored base breakdowns.
func applyRoundChips(
	week gameweek.GameWeek,
	predictions []prediction.Prediction,
	chipsFor func(participantID string, round int) []chip.Assignment,
) []prediction.Prediction {
	byParticipant := make(map[string]map[string]prediction.Breakdown)
	for _, p := range predictions {
		if p.Points == nil {
			continue
		}
		if byParticipant[p.ParticipantID] == nil {
			byParticipant[p.ParticipantID] = make(map[string]prediction.Breakdown)
		}
		byParticipant[p.ParticipantID][p.FixtureID] = *p.Points
	}

	out := append([]prediction.Prediction(nil), predictions...)
	for participantID, breakdowns := range byParticipant {
		applied := chip.ApplyRound(week.Fixtures, breakdowns, chipsFor(participantID, week.Round))
		for i := range out {
			if out[i].ParticipantID != participantID {
				continue
			}
			if b, ok := applied[out[i].FixtureID]; ok {
				out[i].Points = &b
			}
		}
	}
	return out
}
