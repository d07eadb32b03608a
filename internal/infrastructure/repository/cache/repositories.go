package cache

import (
	"context"

	"github.com/riskibarqy/prediction-league/internal/domain/league"
	basecache "github.com/riskibarqy/prediction-league/internal/platform/cache"
	"github.com/valyala/bytebufferpool"
)

const (
	leagueListKey       = "league:list"
	leagueByIDKeyPrefix = "league:id:"
)

// LeagueRepository caches league documents. Writes go straight to next and
// evict the affected keys afterwards.
type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	v, err := r.cache.GetOrLoad(ctx, leagueListKey, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return cloneLeagues(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return cloneLeagues(items), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, leagueByIDKey(leagueID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	return cached.value.Clone(), cached.exists, nil
}

func (r *LeagueRepository) Create(ctx context.Context, item league.League) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.ID)
	return nil
}

func (r *LeagueRepository) Replace(ctx context.Context, item league.League, expectedVersion int64) error {
	err := r.next.Replace(ctx, item, expectedVersion)
	// A conflict means the cached copy is stale as well.
	r.invalidate(ctx, item.ID)
	return err
}

func (r *LeagueRepository) invalidate(ctx context.Context, leagueID string) {
	r.cache.Delete(ctx, leagueByIDKey(leagueID))
	r.cache.Delete(ctx, leagueListKey)
}

type cachedLeagueByID struct {
	value  league.League
	exists bool
}

func leagueByIDKey(leagueID string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(leagueByIDKeyPrefix)
	_, _ = buf.WriteString(leagueID)
	return buf.String()
}

func cloneLeagues(items []league.League) []league.League {
	out := make([]league.League, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}
