package prediction

import (
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/player"
)

// Scorer is the goal-scorer a participant picked for a fixture.
type Scorer struct {
	PlayerID string
	Name     string
	Team     string
	Position player.Position
}

// Prediction is one participant's guess for one fixture.
// Nil goals mean the fixture was not predicted.
type Prediction struct {
	ParticipantID    string
	FixtureID        string
	HomeGoals        *int
	AwayGoals        *int
	GoalScorer       *Scorer
	FirstTeamToScore fixture.Side
	SubmittedAt      time.Time
	Points           *Breakdown
}

func (p Prediction) IsPredicted() bool {
	return p.HomeGoals != nil && p.AwayGoals != nil
}

// Outcome derives 1/X/2 from the predicted goals.
func (p Prediction) Outcome() (fixture.Outcome, bool) {
	if !p.IsPredicted() {
		return "", false
	}
	return fixture.OutcomeOf(*p.HomeGoals, *p.AwayGoals), true
}

// Scored pairs a participant with the breakdown awarded for one fixture.
type Scored struct {
	ParticipantID string
	FixtureID     string
	Breakdown     Breakdown
}

// Clone returns a copy that shares no pointers or slices with p.
func (p Prediction) Clone() Prediction {
	out := p
	if p.HomeGoals != nil {
		v := *p.HomeGoals
		out.HomeGoals = &v
	}
	if p.AwayGoals != nil {
		v := *p.AwayGoals
		out.AwayGoals = &v
	}
	if p.GoalScorer != nil {
		scorer := *p.GoalScorer
		out.GoalScorer = &scorer
	}
	if p.Points != nil {
		points := p.Points.Clone()
		out.Points = &points
	}
	return out
}
