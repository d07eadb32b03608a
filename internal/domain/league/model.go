package league

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/chip"
	"github.com/riskibarqy/prediction-league/internal/domain/gameweek"
	"github.com/riskibarqy/prediction-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
)

var (
	ErrVersionConflict = errors.New("league version conflict")
	ErrAlreadyExists   = errors.New("league already exists")
)

// League is a prediction league stored as one document. Version increases on
// every successful replace.
type League struct {
	ID              string
	Name            string
	AdminUserID     string
	Version         int64
	RuleSet         scoring.RuleSet
	RuleSetTemplate string
	ChipAllowance   chip.Allowance
	Participants    []Participant
	GameWeeks       []gameweek.GameWeek
	Chips           []chip.Assignment
	Standings       []leaguestanding.Standing
	HasEnded        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Participant struct {
	UserID      string
	DisplayName string
	JoinedAt    time.Time
}

func (l League) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("league id is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}
	if strings.TrimSpace(l.AdminUserID) == "" {
		return fmt.Errorf("league admin is required")
	}
	if err := l.RuleSet.Validate(); err != nil {
		return err
	}
	if err := l.ChipAllowance.Validate(); err != nil {
		return err
	}

	return nil
}

func (l League) IsAdmin(userID string) bool {
	return userID != "" && l.AdminUserID == userID
}

func (l League) HasParticipant(userID string) bool {
	_, ok := l.Participant(userID)
	return ok
}

func (l League) Participant(userID string) (Participant, bool) {
	for _, p := range l.Participants {
		if p.UserID == userID {
			return p, true
		}
	}
	return Participant{}, false
}

// GameWeek returns the round and its index in GameWeeks.
func (l League) GameWeek(round int) (gameweek.GameWeek, int, bool) {
	for i, g := range l.GameWeeks {
		if g.Round == round {
			return g, i, true
		}
	}
	return gameweek.GameWeek{}, -1, false
}

// NextRound is the round number a newly added game week receives.
func (l League) NextRound() int {
	next := 1
	for _, g := range l.GameWeeks {
		if g.Round >= next {
			next = g.Round + 1
		}
	}
	return next
}

// ChipsFor returns the participant's chip assignments, optionally limited to
// one round when round > 0.
func (l League) ChipsFor(participantID string, round int) []chip.Assignment {
	out := make([]chip.Assignment, 0)
	for _, a := range l.Chips {
		if a.ParticipantID != participantID {
			continue
		}
		if round > 0 && a.Round != round {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Scored lists every awarded breakdown across all rounds.
func (l League) Scored() []prediction.Scored {
	out := make([]prediction.Scored, 0)
	for _, g := range l.GameWeeks {
		for _, p := range g.Predictions {
			if p.Points == nil {
				continue
			}
			out = append(out, prediction.Scored{
				ParticipantID: p.ParticipantID,
				FixtureID:     p.FixtureID,
				Breakdown:     *p.Points,
			})
		}
	}
	return out
}

func (l League) Seeds() []leaguestanding.Seed {
	out := make([]leaguestanding.Seed, 0, len(l.Participants))
	for _, p := range l.Participants {
		out = append(out, leaguestanding.Seed{ParticipantID: p.UserID, DisplayName: p.DisplayName})
	}
	return out
}

// RebuildStandings recomputes the table from every stored breakdown.
func (l League) RebuildStandings() []leaguestanding.Standing {
	return leaguestanding.Rebuild(l.Standings, l.Seeds(), l.Scored())
}

// Clone returns a deep copy of the document.
func (l League) Clone() League {
	out := l
	out.Participants = slices.Clone(l.Participants)
	out.Chips = slices.Clone(l.Chips)
	out.Standings = slices.Clone(l.Standings)
	out.GameWeeks = make([]gameweek.GameWeek, 0, len(l.GameWeeks))
	for _, g := range l.GameWeeks {
		out.GameWeeks = append(out.GameWeeks, g.Clone())
	}
	return out
}
