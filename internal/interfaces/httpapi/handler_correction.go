package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-league/internal/usecase"
)

func (h *Handler) SuggestBonuses(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SuggestBonuses")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	round, err := parseRoundParam(r.PathValue("round"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req suggestBonusesRequest
	if err := h.decodeAndValidate(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	fixtureID := strings.TrimSpace(r.PathValue("fixtureID"))
	suggestions, err := h.correctionService.SuggestBonuses(ctx, usecase.CorrectFixtureInput{
		LeagueID:  leagueID,
		UserID:    principal.UserID,
		Round:     round,
		FixtureID: fixtureID,
		Result:    resultFromPayload(req.Result),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "suggest bonuses failed", "league_id", leagueID, "round", round, "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, suggestionsToDTO(ctx, suggestions))
}

func (h *Handler) CorrectFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CorrectFixture")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	round, err := parseRoundParam(r.PathValue("round"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req correctFixtureRequest
	if err := h.decodeAndValidate(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	fixtureID := strings.TrimSpace(r.PathValue("fixtureID"))
	out, err := h.correctionService.CorrectFixture(ctx, usecase.CorrectFixtureInput{
		LeagueID:          leagueID,
		UserID:            principal.UserID,
		Round:             round,
		FixtureID:         fixtureID,
		Result:            resultFromPayload(req.Result),
		AcceptSuggestions: req.AcceptSuggestions,
		Overrides:         overridesFromPayload(req.Overrides),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "correct fixture failed", "league_id", leagueID, "round", round, "fixture_id", fixtureID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, correctionToDTO(ctx, out, time.Now().UTC()))
}
