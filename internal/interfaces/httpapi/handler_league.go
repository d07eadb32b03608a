package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
	"github.com/riskibarqy/prediction-league/internal/usecase"
)

func (h *Handler) ListRuleTemplates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRuleTemplates")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, ruleTemplatesToDTO(ctx, h.leagueService.ListRuleTemplates(), scoring.Ranges()))
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.leagueService.ListLeagues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueSummaryDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToSummaryDTO(ctx, l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	item, err := h.leagueService.GetLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(ctx, item, time.Now().UTC()))
}

func (h *Handler) GetGameWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameWeek")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	round, err := parseRoundParam(r.PathValue("round"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	week, err := h.leagueService.GetGameWeek(ctx, leagueID, round)
	if err != nil {
		h.logger.WarnContext(ctx, "get game week failed", "league_id", leagueID, "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameWeekToDTO(ctx, week, time.Now().UTC()))
}

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createLeagueRequest
	if err := h.decodeAndValidate(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	displayName := req.DisplayName
	if strings.TrimSpace(displayName) == "" {
		displayName = principal.Email
	}

	item, err := h.leagueService.CreateLeague(ctx, usecase.CreateLeagueInput{
		Name:             req.Name,
		AdminUserID:      principal.UserID,
		AdminDisplayName: displayName,
		Template:         req.Template,
		RuleSet:          ruleSetFromPayload(req.Rules),
		ChipAllowance:    allowanceFromPayload(req.ChipAllowance),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create league failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueToDTO(ctx, item, time.Now().UTC()))
}

func (h *Handler) JoinLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req joinLeagueRequest
	if err := h.decodeAndValidate(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	displayName := req.DisplayName
	if strings.TrimSpace(displayName) == "" {
		displayName = principal.Email
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	item, err := h.leagueService.JoinLeague(ctx, usecase.JoinLeagueInput{
		LeagueID:    leagueID,
		UserID:      principal.UserID,
		DisplayName: displayName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "join league failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(ctx, item, time.Now().UTC()))
}

func (h *Handler) UpdateRuleSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateRuleSet")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateRuleSetRequest
	if err := h.decodeAndValidate(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	item, err := h.leagueService.UpdateRuleSet(ctx, usecase.UpdateRuleSetInput{
		LeagueID: leagueID,
		UserID:   principal.UserID,
		Template: req.Template,
		RuleSet:  ruleSetFromPayload(req.Rules),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update rule set failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(ctx, item, time.Now().UTC()))
}

func (h *Handler) AddGameWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddGameWeek")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req addGameWeekRequest
	if err := h.decodeAndValidate(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	week, err := h.leagueService.AddGameWeek(ctx, usecase.AddGameWeekInput{
		LeagueID: leagueID,
		UserID:   principal.UserID,
		StartsAt: req.StartsAt,
		Deadline: req.Deadline,
		Fixtures: fixturesFromRequest(req.Fixtures),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add game week failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameWeekToDTO(ctx, week, time.Now().UTC()))
}

func (h *Handler) EndLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EndLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	item, err := h.leagueService.EndLeague(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "end league failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "league ended", "league_id", leagueID, "user_id", principal.UserID)
	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(ctx, item, time.Now().UTC()))
}
