package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/prediction-league/internal/domain/league"
)

// LeagueRepository keeps league documents in process. Reads and writes clone
// the document so callers never share slices with the store.
type LeagueRepository struct {
	mu     sync.RWMutex
	items  map[string]league.League
	orders []string
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	items := make(map[string]league.League, len(leagues))
	orders := make([]string, 0, len(leagues))

	for _, l := range leagues {
		if _, exists := items[l.ID]; !exists {
			orders = append(orders, l.ID)
		}
		items[l.ID] = l.Clone()
	}

	return &LeagueRepository{
		items:  items,
		orders: orders,
	}
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id].Clone())
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[leagueID]
	if !ok {
		return league.League{}, false, nil
	}

	return l.Clone(), true, nil
}

func (r *LeagueRepository) Create(_ context.Context, item league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("%w: %s", league.ErrAlreadyExists, item.ID)
	}
	r.items[item.ID] = item.Clone()
	r.orders = append(r.orders, item.ID)
	return nil
}

func (r *LeagueRepository) Replace(_ context.Context, item league.League, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.items[item.ID]
	if !exists || current.Version != expectedVersion {
		return fmt.Errorf("%w: league=%s expected version=%d", league.ErrVersionConflict, item.ID, expectedVersion)
	}
	r.items[item.ID] = item.Clone()
	return nil
}
