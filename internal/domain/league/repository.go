package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]League, error)
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	Create(ctx context.Context, league League) error
	// Replace stores the whole document when the stored version equals
	// expectedVersion and returns ErrVersionConflict otherwise.
	Replace(ctx context.Context, league League, expectedVersion int64) error
}
