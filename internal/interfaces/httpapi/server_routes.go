package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}/result", handler.GetMatchResult)
}

func registerLiveRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches/{matchID}/live/score", handler.GetLiveScore)
	mux.HandleFunc("GET /v1/matches/{matchID}/live/scorecard/{innings}", handler.GetLiveScorecard)
	// Websocket; pushes the current score after every applied refresh.
	mux.HandleFunc("GET /v1/matches/{matchID}/live/stream", handler.StreamLiveScore)
}
