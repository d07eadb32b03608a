package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/prediction-league/internal/domain/chip"
	"github.com/riskibarqy/prediction-league/internal/usecase"
)

func (h *Handler) SubmitPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPredictions")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitPredictionsRequest
	if err := h.decodeAndValidate(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	items, err := h.predictionService.SubmitPredictions(ctx, usecase.SubmitPredictionsInput{
		LeagueID: leagueID,
		UserID:   principal.UserID,
		Round:    req.Round,
		Items:    predictionsFromRequest(req.Predictions),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit predictions failed", "league_id", leagueID, "user_id", principal.UserID, "round", req.Round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionsToDTO(ctx, items))
}

func (h *Handler) ListMyPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPredictions")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	round := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("round")); raw != "" {
		round, err = parseRoundParam(raw)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	items, err := h.predictionService.ListMyPredictions(ctx, leagueID, principal.UserID, round)
	if err != nil {
		h.logger.WarnContext(ctx, "list my predictions failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionsToDTO(ctx, items))
}

func (h *Handler) AssignChip(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignChip")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req assignChipRequest
	if err := h.decodeAndValidate(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	assignment, err := h.chipService.AssignChip(ctx, usecase.AssignChipInput{
		LeagueID:  leagueID,
		UserID:    principal.UserID,
		Kind:      chip.Kind(req.Kind),
		Round:     req.Round,
		Scope:     chip.Scope(req.Scope),
		FixtureID: req.FixtureID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "assign chip failed", "league_id", leagueID, "user_id", principal.UserID, "kind", req.Kind, "round", req.Round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, chipAssignmentToDTO(assignment))
}

func (h *Handler) UnassignChip(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UnassignChip")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	kind, err := chip.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	round, err := parseRoundParam(r.PathValue("round"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	if err := h.chipService.UnassignChip(ctx, leagueID, principal.UserID, kind, round); err != nil {
		h.logger.WarnContext(ctx, "unassign chip failed", "league_id", leagueID, "user_id", principal.UserID, "kind", kind, "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListMyChips(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyChips")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	remaining, err := h.chipService.RemainingChips(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my chips failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, chipRemainingToDTO(remaining))
}
