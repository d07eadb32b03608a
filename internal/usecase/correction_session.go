package usecase

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
)

type CorrectFixtureInput struct {
	LeagueID          string
	UserID            string
	Round             int
	FixtureID         string
	Result            fixture.Result
	AcceptSuggestions bool
	Overrides         map[string]scoring.Bonuses
}

// CorrectionSession is the administrator's correction request frozen into a
// value. Accessors return copies.
type CorrectionSession struct {
	leagueID          string
	correctedBy       string
	round             int
	fixtureID         string
	result            fixture.Result
	acceptSuggestions bool
	overrides         map[string]scoring.Bonuses
	correctedAt       time.Time
}

func NewCorrectionSession(input CorrectFixtureInput, now time.Time) (CorrectionSession, error) {
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.FixtureID = strings.TrimSpace(input.FixtureID)
	if input.LeagueID == "" {
		return CorrectionSession{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.FixtureID == "" {
		return CorrectionSession{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}
	if input.Round < 1 {
		return CorrectionSession{}, fmt.Errorf("%w: round must be >= 1", ErrInvalidInput)
	}
	if err := input.Result.Validate(); err != nil {
		return CorrectionSession{}, err
	}

	result := input.Result
	result.GoalScorers = slices.Clone(input.Result.GoalScorers)
	if input.Result.Aggregate != nil {
		agg := *input.Result.Aggregate
		result.Aggregate = &agg
	}

	return CorrectionSession{
		leagueID:          input.LeagueID,
		correctedBy:       strings.TrimSpace(input.UserID),
		round:             input.Round,
		fixtureID:         input.FixtureID,
		result:            result,
		acceptSuggestions: input.AcceptSuggestions,
		overrides:         maps.Clone(input.Overrides),
		correctedAt:       now.UTC(),
	}, nil
}

func (s CorrectionSession) LeagueID() string       { return s.leagueID }
func (s CorrectionSession) CorrectedBy() string    { return s.correctedBy }
func (s CorrectionSession) Round() int             { return s.round }
func (s CorrectionSession) FixtureID() string      { return s.fixtureID }
func (s CorrectionSession) CorrectedAt() time.Time { return s.correctedAt }

func (s CorrectionSession) Result() fixture.Result {
	out := s.result
	out.GoalScorers = slices.Clone(s.result.GoalScorers)
	if s.result.Aggregate != nil {
		agg := *s.result.Aggregate
		out.Aggregate = &agg
	}
	return out
}

// Apply returns fx carrying the session's result.
func (s CorrectionSession) Apply(fx fixture.Fixture) fixture.Fixture {
	result := s.Result()
	at := s.correctedAt
	fx.FinalResult = &result
	fx.CorrectedAt = &at
	return fx
}

// BonusesFor picks the bonus categories for one participant: an explicit
// override first, then the engine suggestion when accepted, otherwise none.
func (s CorrectionSession) BonusesFor(participantID string, suggested map[string]scoring.Bonuses) scoring.Bonuses {
	if override, ok := s.overrides[participantID]; ok {
		return override
	}
	if s.acceptSuggestions {
		return suggested[participantID]
	}
	return scoring.Bonuses{}
}
