package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/chip"
	"github.com/riskibarqy/prediction-league/internal/domain/gameweek"
	"github.com/riskibarqy/prediction-league/internal/domain/league"
)

type AssignChipInput struct {
	LeagueID  string
	UserID    string
	Kind      chip.Kind
	Round     int
	Scope     chip.Scope
	FixtureID string
}

type ChipService struct {
	leagueRepo league.Repository
	now        func() time.Time
}

func NewChipService(leagueRepo league.Repository) *ChipService {
	return &ChipService{
		leagueRepo: leagueRepo,
		now:        time.Now,
	}
}

// AssignChip activates a chip for a round while its chip window is open. The allowance
// is counted across the whole league.
func (s *ChipService) AssignChip(ctx context.Context, input AssignChipInput) (chip.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChipService.AssignChip")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, input.LeagueID)
	if err != nil {
		return chip.Assignment{}, err
	}
	if err := requireParticipant(item, input.UserID); err != nil {
		return chip.Assignment{}, err
	}

	week, _, ok := item.GameWeek(input.Round)
	if !ok {
		return chip.Assignment{}, fmt.Errorf("%w: league=%s round=%d", ErrNotFound, item.ID, input.Round)
	}

	now := s.now().UTC()
	scope := input.Scope
	if scope == "" {
		scope = chip.DefaultScope(input.Kind)
	}
	next := chip.Assignment{
		ParticipantID: input.UserID,
		Kind:          input.Kind,
		Round:         week.Round,
		Scope:         scope,
		FixtureID:     strings.TrimSpace(input.FixtureID),
		AssignedAt:    now,
	}
	if next.Scope == chip.ScopeFixture {
		if _, _, ok := week.Fixture(next.FixtureID); !ok {
			return chip.Assignment{}, fmt.Errorf("%w: fixture=%s is not in round=%d", chip.ErrInvalidAssignment, next.FixtureID, week.Round)
		}
	}
	if err := chipWindowOpen(week, next, now); err != nil {
		return chip.Assignment{}, err
	}
	if err := chip.CheckAssign(item.Chips, next, item.ChipAllowance); err != nil {
		return chip.Assignment{}, err
	}

	item.Chips = append(item.Chips, next)
	if _, err := replaceLeague(ctx, s.leagueRepo, item, now); err != nil {
		return chip.Assignment{}, err
	}

	return next, nil
}

// UnassignChip releases a chip while the round's chip window is open, returning the use
// to the allowance.
func (s *ChipService) UnassignChip(ctx context.Context, leagueID, userID string, kind chip.Kind, round int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChipService.UnassignChip")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return err
	}
	if err := requireParticipant(item, userID); err != nil {
		return err
	}

	week, _, ok := item.GameWeek(round)
	if !ok {
		return fmt.Errorf("%w: league=%s round=%d", ErrNotFound, item.ID, round)
	}
	now := s.now().UTC()

	kept := make([]chip.Assignment, 0, len(item.Chips))
	var removed *chip.Assignment
	for _, a := range item.Chips {
		if a.ParticipantID == userID && a.Kind == kind && a.Round == round {
			removed = &a
			continue
		}
		kept = append(kept, a)
	}
	if removed == nil {
		return fmt.Errorf("%w: chip=%s round=%d", ErrNotFound, kind, round)
	}
	if err := chipWindowOpen(week, *removed, now); err != nil {
		return err
	}

	item.Chips = kept
	_, err = replaceLeague(ctx, s.leagueRepo, item, now)
	return err
}

// chipWindowOpen rejects chip changes once the deadline has passed, once any
// result of the round is stored, or once the designated fixture has kicked
// off. Standings never need a rebuild after a chip change as a result.
func chipWindowOpen(week gameweek.GameWeek, a chip.Assignment, now time.Time) error {
	fixtureID := ""
	if a.Scope == chip.ScopeFixture {
		fixtureID = a.FixtureID
	}
	if !week.AcceptsChips(now, fixtureID) {
		return fmt.Errorf("%w: round=%d deadline=%s state=%s", chip.ErrLocked, week.Round, week.Deadline.Format(time.RFC3339), week.State(now))
	}
	return nil
}

// RemainingChips returns the caller's unused chips per kind.
func (s *ChipService) RemainingChips(ctx context.Context, leagueID, userID string) (map[chip.Kind]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChipService.RemainingChips")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}
	if err := requireParticipant(item, userID); err != nil {
		return nil, err
	}

	return chip.Remaining(item.Chips, userID, item.ChipAllowance), nil
}
