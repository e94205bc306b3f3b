package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/competitions/{competitionID}/fixtures", handler.ListFixtures)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/topscorers", handler.ListTopScorers)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/matches/{matchID}/goals", handler.ListMatchGoals)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/matches/{matchID}/topscorers", handler.ListMatchTopScorers)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/admin/competitions/{competitionID}/schedule", RequireAdminToken(adminToken, http.HandlerFunc(handler.GenerateSchedule)))
	mux.Handle("POST /v1/admin/matches/{matchID}/goals", RequireAdminToken(adminToken, http.HandlerFunc(handler.RecordGoal)))
	mux.Handle("PUT /v1/admin/goals/{goalID}", RequireAdminToken(adminToken, http.HandlerFunc(handler.AmendGoal)))
	mux.Handle("DELETE /v1/admin/goals/{goalID}", RequireAdminToken(adminToken, http.HandlerFunc(handler.RetractGoal)))
	mux.Handle("PUT /v1/admin/matches/{matchID}/status", RequireAdminToken(adminToken, http.HandlerFunc(handler.SetMatchStatus)))
	mux.Handle("POST /v1/admin/competitions/{competitionID}/resync", RequireAdminToken(adminToken, http.HandlerFunc(handler.Resync)))
}
