package gameweek

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
)

var (
	ErrNotPredictable = errors.New("game week is not accepting predictions")
	ErrNotCorrectable = errors.New("game week cannot be corrected")
	ErrInvalidRound   = errors.New("invalid game week")
)

type State string

const (
	StateUpcoming    State = "upcoming"
	StatePredictable State = "predictable"
	StateLocked      State = "locked"
	StateCorrected   State = "corrected"
	StateEnded       State = "ended"
)

// GameWeek is one round of fixtures sharing a prediction deadline.
type GameWeek struct {
	Round            int
	StartsAt         time.Time
	Deadline         time.Time
	Fixtures         []fixture.Fixture
	Predictions      []prediction.Prediction
	HasBeenCorrected bool
	HasEnded         bool
	ForceEnded       bool
	CorrectedAt      *time.Time
	EndedAt          *time.Time
}

// State derives the lifecycle state at now.
func (g GameWeek) State(now time.Time) State {
	switch {
	case g.HasEnded:
		return StateEnded
	case g.allCorrected():
		return StateCorrected
	case now.Before(g.StartsAt):
		return StateUpcoming
	case now.Before(g.Deadline):
		return StatePredictable
	default:
		return StateLocked
	}
}

func (g GameWeek) AcceptsPredictions(now time.Time) bool {
	return g.State(now) == StatePredictable
}

// AcceptsCorrections reports whether results may be entered at now. Results
// are taken once the deadline has passed and corrected rounds may be
// re-corrected. Rounds closed by an administrator never award points.
func (g GameWeek) AcceptsCorrections(now time.Time) bool {
	if g.ForceEnded {
		return false
	}
	switch g.State(now) {
	case StateLocked, StateCorrected, StateEnded:
		return true
	default:
		return false
	}
}

// AcceptsChips reports whether chips may be placed on or released from the
// round at now. A chip designated to fixtureID also closes once that fixture
// kicks off. Any stored result closes every chip of the round.
func (g GameWeek) AcceptsChips(now time.Time, fixtureID string) bool {
	if g.HasEnded || !now.Before(g.Deadline) {
		return false
	}
	for _, fx := range g.Fixtures {
		if fx.IsCorrected() {
			return false
		}
		if fixtureID != "" && fx.ID == fixtureID && fx.HasKickedOff(now) {
			return false
		}
	}
	return true
}

// Finalize recomputes HasBeenCorrected and ends the round once every fixture
// has a result.
func (g GameWeek) Finalize(now time.Time) GameWeek {
	g.HasBeenCorrected = g.allCorrected()
	if g.HasBeenCorrected {
		at := now.UTC()
		g.CorrectedAt = &at
		if !g.HasEnded {
			g.HasEnded = true
			g.EndedAt = &at
		}
	}
	return g
}

// ForceEnd closes the round without awarding points. Already ended rounds are
// returned unchanged.
func (g GameWeek) ForceEnd(now time.Time) GameWeek {
	if g.HasEnded {
		return g
	}
	at := now.UTC()
	g.HasEnded = true
	g.ForceEnded = true
	g.EndedAt = &at
	return g
}

func (g GameWeek) allCorrected() bool {
	if len(g.Fixtures) == 0 {
		return false
	}
	for _, fx := range g.Fixtures {
		if !fx.IsCorrected() {
			return false
		}
	}
	return true
}

func (g GameWeek) Fixture(fixtureID string) (fixture.Fixture, int, bool) {
	for i, fx := range g.Fixtures {
		if fx.ID == fixtureID {
			return fx, i, true
		}
	}
	return fixture.Fixture{}, -1, false
}

// PredictionFor returns the participant's prediction and its index.
func (g GameWeek) PredictionFor(participantID, fixtureID string) (prediction.Prediction, int, bool) {
	for i, p := range g.Predictions {
		if p.ParticipantID == participantID && p.FixtureID == fixtureID {
			return p, i, true
		}
	}
	return prediction.Prediction{}, -1, false
}

// Validate checks the round shape before it is stored.
func (g GameWeek) Validate() error {
	if g.Round < 1 {
		return fmt.Errorf("%w: round must be >= 1", ErrInvalidRound)
	}
	if g.StartsAt.IsZero() || g.Deadline.IsZero() {
		return fmt.Errorf("%w: start and deadline are required", ErrInvalidRound)
	}
	if g.Deadline.Before(g.StartsAt) {
		return fmt.Errorf("%w: deadline must not be before start", ErrInvalidRound)
	}
	if len(g.Fixtures) == 0 {
		return fmt.Errorf("%w: at least one fixture is required", ErrInvalidRound)
	}

	seen := make(map[string]struct{}, len(g.Fixtures))
	for _, fx := range g.Fixtures {
		if fx.ID == "" {
			return fmt.Errorf("%w: fixture id is required", ErrInvalidRound)
		}
		if _, ok := seen[fx.ID]; ok {
			return fmt.Errorf("%w: duplicate fixture %s", ErrInvalidRound, fx.ID)
		}
		seen[fx.ID] = struct{}{}
		if fx.HomeTeam == "" || fx.AwayTeam == "" {
			return fmt.Errorf("%w: fixture %s needs both teams", ErrInvalidRound, fx.ID)
		}
		if fx.KickoffAt.Before(g.StartsAt) {
			return fmt.Errorf("%w: fixture %s kicks off before the round starts", ErrInvalidRound, fx.ID)
		}
	}

	return nil
}

// Clone returns a deep copy of the round.
func (g GameWeek) Clone() GameWeek {
	out := g
	out.Fixtures = make([]fixture.Fixture, 0, len(g.Fixtures))
	for _, fx := range g.Fixtures {
		out.Fixtures = append(out.Fixtures, fx.Clone())
	}
	out.Predictions = make([]prediction.Prediction, 0, len(g.Predictions))
	for _, p := range g.Predictions {
		out.Predictions = append(out.Predictions, p.Clone())
	}
	if g.CorrectedAt != nil {
		at := *g.CorrectedAt
		out.CorrectedAt = &at
	}
	if g.EndedAt != nil {
		at := *g.EndedAt
		out.EndedAt = &at
	}
	return out
}
