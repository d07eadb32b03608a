package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/league"
)

func loadLeague(ctx context.Context, repo league.Repository, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	return item, nil
}

// replaceLeague writes the whole document back with the version it was read
// at. Concurrent writers surface as ErrConflict and nothing is stored.
func replaceLeague(ctx context.Context, repo league.Repository, item league.League, now time.Time) (league.League, error) {
	expected := item.Version
	item.Version = expected + 1
	item.UpdatedAt = now

	if err := repo.Replace(ctx, item, expected); err != nil {
		if errors.Is(err, league.ErrVersionConflict) {
			return league.League{}, fmt.Errorf("%w: league=%s version=%d", ErrConflict, item.ID, expected)
		}
		return league.League{}, fmt.Errorf("replace league: %w", err)
	}

	return item, nil
}

func requireAdmin(item league.League, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if !item.IsAdmin(userID) {
		return fmt.Errorf("%w: user=%s is not admin of league=%s", ErrForbidden, userID, item.ID)
	}
	return nil
}

func requireParticipant(item league.League, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if !item.HasParticipant(userID) {
		return fmt.Errorf("%w: user=%s has not joined league=%s", ErrForbidden, userID, item.ID)
	}
	return nil
}
