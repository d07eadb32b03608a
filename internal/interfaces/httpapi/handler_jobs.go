package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/prediction-league/internal/usecase"
)

func (h *Handler) RunRebuildStandingsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRebuildStandingsJob")
	defer span.End()

	var req rebuildStandingsJobRequest
	if err := h.decodeAndValidate(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.standingsService.RebuildStandings(ctx, usecase.RebuildStandingsInput{
		LeagueID:   strings.TrimSpace(req.LeagueID),
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "run rebuild standings job failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "rebuild standings job finished",
		"league_count", result.LeagueCount,
		"success_count", result.SuccessCount,
		"failed_count", result.FailedCount,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}

// RunCorrectionCompletedJob reconciles the standings of a league after a
// correction. A stored version older than the notified one means the read
// is stale, so the job answers with a conflict and the queue retries it.
func (h *Handler) RunCorrectionCompletedJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunCorrectionCompletedJob")
	defer span.End()

	var req correctionCompletedJobRequest
	if err := h.decodeAndValidate(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.leagueService.GetLeague(ctx, req.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "correction completed job failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if item.Version < req.Version {
		writeError(ctx, w, fmt.Errorf("%w: league=%s stored version=%d is behind notified version=%d", usecase.ErrConflict, item.ID, item.Version, req.Version))
		return
	}

	changed, err := h.standingsService.RebuildLeague(ctx, item.ID)
	if err != nil {
		h.logger.WarnContext(ctx, "correction completed job failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "correction completed",
		"league_id", req.LeagueID,
		"round", req.Round,
		"fixture_id", req.FixtureID,
		"version", req.Version,
		"scored_count", req.ScoredCount,
		"round_corrected", req.RoundCorrected,
		"corrected_by", req.CorrectedBy,
		"standings_changed", changed,
	)

	writeSuccess(ctx, w, http.StatusOK, correctionCompletedDTO{
		LeagueID:        item.ID,
		NotifiedVersion: req.Version,
		StandingsChange: changed,
	})
}
