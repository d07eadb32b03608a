package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-league/internal/domain/league"
	qb "github.com/riskibarqy/prediction-league/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func leagueBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"id",
		"public_id",
		"name",
		"admin_user_id",
		"version",
		"document",
		"has_ended",
		"created_at",
		"updated_at",
		"deleted_at",
	).From(predictionLeagueTable)
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := leagueBaseSelectBuilder().
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		item, err := leagueFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	query, args, err := leagueBaseSelectBuilder().
		Where(
			qb.Eq("public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}

	item, err := leagueFromRow(row)
	if err != nil {
		return league.League{}, false, err
	}
	return item, true, nil
}

func (r *LeagueRepository) Create(ctx context.Context, item league.League) error {
	document, err := encodeLeagueDocument(item)
	if err != nil {
		return err
	}

	insertModel := leagueInsertModel{
		PublicID:    item.ID,
		Name:        item.Name,
		AdminUserID: item.AdminUserID,
		Version:     item.Version,
		Document:    document,
		HasEnded:    item.HasEnded,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	query, args, err := qb.InsertModel(predictionLeagueTable, insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert league query: %w", err)
	}

	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s", league.ErrAlreadyExists, item.ID)
			}
			return fmt.Errorf("insert league: %w", err)
		}
		return syncStandings(ctx, tx, item)
	})
}

// Replace writes the whole document guarded by the stored version.
func (r *LeagueRepository) Replace(ctx context.Context, item league.League, expectedVersion int64) error {
	document, err := encodeLeagueDocument(item)
	if err != nil {
		return err
	}

	query, args, err := qb.Update(predictionLeagueTable).
		Set("name", item.Name).
		Set("admin_user_id", item.AdminUserID).
		Set("version", item.Version).
		SetExpr("document", "?::jsonb", document).
		Set("has_ended", item.HasEnded).
		Set("updated_at", item.UpdatedAt).
		Where(
			qb.Eq("public_id", item.ID),
			qb.Eq("version", expectedVersion),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build replace league query: %w", err)
	}

	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("replace league: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("read replace league affected rows: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("%w: league=%s expected version=%d", league.ErrVersionConflict, item.ID, expectedVersion)
		}
		return syncStandings(ctx, tx, item)
	})
}

func (r *LeagueRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin league tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit league tx: %w", err)
	}
	return nil
}
