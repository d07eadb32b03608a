package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-league/internal/domain/league"
	"github.com/riskibarqy/prediction-league/internal/domain/leaguestanding"
	qb "github.com/riskibarqy/prediction-league/internal/platform/querybuilder"
)

const upsertStandingSuffix = `ON CONFLICT (league_public_id, participant_id) WHERE deleted_at IS NULL
DO UPDATE SET
    display_name = EXCLUDED.display_name,
    rank = EXCLUDED.rank,
    points = EXCLUDED.points,
    correct_results = EXCLUDED.correct_results,
    odds_bonus_points = EXCLUDED.odds_bonus_points,
    league_version = EXCLUDED.league_version,
    updated_at = EXCLUDED.updated_at`

// LeagueStandingRepository reads the relational copy of each league's table.
// The league document stays the source of truth; rows are rewritten in the
// same transaction as every document write.
type LeagueStandingRepository struct {
	db *sqlx.DB
}

func NewLeagueStandingRepository(db *sqlx.DB) *LeagueStandingRepository {
	return &LeagueStandingRepository{db: db}
}

func (r *LeagueStandingRepository) ListByLeague(ctx context.Context, leagueID string) ([]leaguestanding.Standing, error) {
	query, args, err := qb.Select("*").From(predictionLeagueStandingTable).
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("rank", "participant_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list league standings query: %w", err)
	}

	var rows []leagueStandingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list league standings: %w", err)
	}

	out := make([]leaguestanding.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, leaguestanding.Standing{
			ParticipantID:   row.ParticipantID,
			DisplayName:     strings.TrimSpace(row.DisplayName),
			Points:          row.Points,
			CorrectResults:  row.CorrectResults,
			OddsBonusPoints: row.OddsBonusPoints,
			Rank:            row.Rank,
		})
	}

	return out, nil
}

// syncStandings upserts the league's current table at its version and
// soft-deletes rows left over from older versions.
func syncStandings(ctx context.Context, tx sqlx.ExtContext, item league.League) error {
	for _, s := range item.Standings {
		insertModel := leagueStandingInsertModel{
			LeagueID:        item.ID,
			ParticipantID:   s.ParticipantID,
			DisplayName:     strings.TrimSpace(s.DisplayName),
			Rank:            s.Rank,
			Points:          s.Points,
			CorrectResults:  s.CorrectResults,
			OddsBonusPoints: s.OddsBonusPoints,
			LeagueVersion:   item.Version,
			UpdatedAt:       item.UpdatedAt,
		}
		query, args, err := qb.InsertModel(predictionLeagueStandingTable, insertModel, upsertStandingSuffix)
		if err != nil {
			return fmt.Errorf("build upsert league standing query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert league standing league=%s participant=%s: %w", item.ID, s.ParticipantID, err)
		}
	}

	clearQuery, clearArgs, err := qb.Update(predictionLeagueStandingTable).
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("league_public_id", item.ID),
			qb.Expr("league_version < ?", item.Version),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear league standings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear stale league standings league=%s: %w", item.ID, err)
	}

	return nil
}
