package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/gameweek"
	"github.com/riskibarqy/prediction-league/internal/domain/league"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
)

type PredictionInput struct {
	FixtureID        string
	HomeGoals        *int
	AwayGoals        *int
	GoalScorer       *prediction.Scorer
	FirstTeamToScore fixture.Side
}

type SubmitPredictionsInput struct {
	LeagueID string
	UserID   string
	Round    int
	Items    []PredictionInput
}

type PredictionService struct {
	leagueRepo league.Repository
	now        func() time.Time
}

func NewPredictionService(leagueRepo league.Repository) *PredictionService {
	return &PredictionService{
		leagueRepo: leagueRepo,
		now:        time.Now,
	}
}

// SubmitPredictions upserts the caller's predictions for one round. The round
// must be predictable and no fixture may have kicked off; one stale item
// rejects the whole batch.
func (s *PredictionService) SubmitPredictions(ctx context.Context, input SubmitPredictionsInput) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.SubmitPredictions")
	defer span.End()

	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one prediction is required", ErrInvalidInput)
	}

	item, err := loadLeague(ctx, s.leagueRepo, input.LeagueID)
	if err != nil {
		return nil, err
	}
	if err := requireParticipant(item, input.UserID); err != nil {
		return nil, err
	}

	week, weekIdx, ok := item.GameWeek(input.Round)
	if !ok {
		return nil, fmt.Errorf("%w: league=%s round=%d", ErrNotFound, item.ID, input.Round)
	}

	now := s.now().UTC()
	if !week.AcceptsPredictions(now) {
		return nil, fmt.Errorf("%w: round=%d state=%s", gameweek.ErrNotPredictable, week.Round, week.State(now))
	}

	predictions := append([]prediction.Prediction(nil), week.Predictions...)
	seen := make(map[string]struct{}, len(input.Items))
	for _, in := range input.Items {
		in.FixtureID = strings.TrimSpace(in.FixtureID)
		if _, dup := seen[in.FixtureID]; dup {
			return nil, fmt.Errorf("%w: duplicate fixture=%s", ErrInvalidInput, in.FixtureID)
		}
		seen[in.FixtureID] = struct{}{}

		fx, _, ok := week.Fixture(in.FixtureID)
		if !ok {
			return nil, fmt.Errorf("%w: fixture=%s round=%d", ErrNotFound, in.FixtureID, week.Round)
		}
		if fx.HasKickedOff(now) {
			return nil, fmt.Errorf("%w: fixture=%s kicked off at %s", gameweek.ErrNotPredictable, fx.ID, fx.KickoffAt.Format(time.RFC3339))
		}
		if fx.IsCorrected() {
			return nil, fmt.Errorf("%w: fixture=%s already has a result", gameweek.ErrNotPredictable, fx.ID)
		}
		if err := validatePredictionInput(fx, in); err != nil {
			return nil, err
		}

		next := prediction.Prediction{
			ParticipantID:    input.UserID,
			FixtureID:        fx.ID,
			HomeGoals:        in.HomeGoals,
			AwayGoals:        in.AwayGoals,
			GoalScorer:       in.GoalScorer,
			FirstTeamToScore: in.FirstTeamToScore,
			SubmittedAt:      now,
		}
		if _, idx, exists := week.PredictionFor(input.UserID, fx.ID); exists {
			predictions[idx] = next
			continue
		}
		predictions = append(predictions, next)
	}

	week.Predictions = predictions
	item.GameWeeks[weekIdx] = week
	if _, err := replaceLeague(ctx, s.leagueRepo, item, now); err != nil {
		return nil, err
	}

	return predictionsOf(week, input.UserID), nil
}

// ListMyPredictions returns the caller's predictions, for one round when
// round > 0 or for every round otherwise.
func (s *PredictionService) ListMyPredictions(ctx context.Context, leagueID, userID string, round int) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListMyPredictions")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}
	if err := requireParticipant(item, userID); err != nil {
		return nil, err
	}

	out := make([]prediction.Prediction, 0)
	for _, week := range item.GameWeeks {
		if round > 0 && week.Round != round {
			continue
		}
		out = append(out, predictionsOf(week, userID)...)
	}

	return out, nil
}

func validatePredictionInput(fx fixture.Fixture, in PredictionInput) error {
	if (in.HomeGoals == nil) != (in.AwayGoals == nil) {
		return fmt.Errorf("%w: fixture=%s needs both goals or neither", ErrInvalidInput, fx.ID)
	}
	if in.HomeGoals != nil && (*in.HomeGoals < 0 || *in.AwayGoals < 0) {
		return fmt.Errorf("%w: fixture=%s goals must be >= 0", ErrInvalidInput, fx.ID)
	}
	if in.GoalScorer != nil {
		if !fx.ShouldPredictGoalScorer {
			return fmt.Errorf("%w: fixture=%s does not take a goal-scorer", ErrInvalidInput, fx.ID)
		}
		if strings.TrimSpace(in.GoalScorer.Name) == "" {
			return fmt.Errorf("%w: fixture=%s goal-scorer name is required", ErrInvalidInput, fx.ID)
		}
		if !in.GoalScorer.Position.Valid() {
			return fmt.Errorf("%w: fixture=%s unknown position %q", ErrInvalidInput, fx.ID, in.GoalScorer.Position)
		}
		if !fx.AcceptsScorerFrom(in.GoalScorer.Team) {
			return fmt.Errorf("%w: fixture=%s goal-scorer must play for %s", ErrInvalidInput, fx.ID, fx.GoalScorerFromTeam)
		}
	}
	if _, ok := fixture.ParseSide(string(in.FirstTeamToScore)); !ok {
		return fmt.Errorf("%w: fixture=%s unknown first team to score %q", ErrInvalidInput, fx.ID, in.FirstTeamToScore)
	}
	return nil
}

func predictionsOf(week gameweek.GameWeek, userID string) []prediction.Prediction {
	out := make([]prediction.Prediction, 0)
	for _, p := range week.Predictions {
		if p.ParticipantID == userID {
			out = append(out, p)
		}
	}
	return out
}
