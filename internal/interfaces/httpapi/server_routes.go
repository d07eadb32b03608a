package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/rule-templates", handler.ListRuleTemplates)
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings/export", handler.ExportStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/gameweeks/{round}", handler.GetGameWeek)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedLeagueRoutes(mux, handler, verifier)
	registerAuthorizedPredictionRoutes(mux, handler, verifier)
	registerAuthorizedCorrectionRoutes(mux, handler, verifier)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/rebuild-standings", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRebuildStandingsJob)))
	mux.Handle("POST /v1/internal/jobs/correction-completed", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunCorrectionCompletedJob)))
}

func registerAuthorizedLeagueRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.CreateLeague)))
	mux.Handle("POST /v1/leagues/{leagueID}/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinLeague)))
	mux.Handle("PUT /v1/leagues/{leagueID}/rules", RequireAuth(verifier, http.HandlerFunc(handler.UpdateRuleSet)))
	mux.Handle("POST /v1/leagues/{leagueID}/gameweeks", RequireAuth(verifier, http.HandlerFunc(handler.AddGameWeek)))
	mux.Handle("POST /v1/leagues/{leagueID}/end", RequireAuth(verifier, http.HandlerFunc(handler.EndLeague)))
}

func registerAuthorizedPredictionRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/leagues/{leagueID}/predictions", RequireAuth(verifier, http.HandlerFunc(handler.SubmitPredictions)))
	mux.Handle("GET /v1/leagues/{leagueID}/predictions/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyPredictions)))
	mux.Handle("POST /v1/leagues/{leagueID}/chips", RequireAuth(verifier, http.HandlerFunc(handler.AssignChip)))
	mux.Handle("GET /v1/leagues/{leagueID}/chips/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyChips)))
	mux.Handle("DELETE /v1/leagues/{leagueID}/chips/{kind}/rounds/{round}", RequireAuth(verifier, http.HandlerFunc(handler.UnassignChip)))
}

func registerAuthorizedCorrectionRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues/{leagueID}/gameweeks/{round}/fixtures/{fixtureID}/bonus-suggestions", RequireAuth(verifier, http.HandlerFunc(handler.SuggestBonuses)))
	mux.Handle("POST /v1/leagues/{leagueID}/gameweeks/{round}/fixtures/{fixtureID}/correction", RequireAuth(verifier, http.HandlerFunc(handler.CorrectFixture)))
}
