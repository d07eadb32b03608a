package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed stores the demo leagues when the table holds no live league.
// It returns how many leagues were inserted.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, now time.Time) (int, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(1) FROM %s WHERE deleted_at IS NULL`, predictionLeagueTable)
	if err := db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	repo := NewLeagueRepository(db)
	inserted := 0
	for _, item := range memory.SeedLeagues(now) {
		if err := repo.Create(ctx, item); err != nil {
			return inserted, fmt.Errorf("seed league %s: %w", item.ID, err)
		}
		inserted++
	}
	return inserted, nil
}
