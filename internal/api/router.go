package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wargame-go/internal/api/middleware"
	"github.com/mcoot/wargame-go/internal/storage"
)

// StatsSource exposes the registry counters the stats endpoint reports.
type StatsSource interface {
	NumberOfGames() int
	WaitingClients() int
}

// RouterConfig holds dependencies for the introspection router
type RouterConfig struct {
	Logger  *slog.Logger
	Stats   StatsSource
	Storage storage.Storage
}

// statsResponse is the JSON body of GET /stats
type statsResponse struct {
	GamesInProgress  int `json:"games_in_progress"`
	ClientsWaiting   int `json:"clients_waiting"`
	CompletedMatches int `json:"completed_matches"`
}

// NewRouter builds the introspection HTTP router: health and registry
// counters. This surface is operator-facing; game clients never use it.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/stats", func(w http.ResponseWriter, req *http.Request) {
		completed, err := cfg.Storage.CountSummaries(req.Context())
		if err != nil {
			cfg.Logger.Error("failed to count summaries", slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := statsResponse{
			GamesInProgress:  cfg.Stats.NumberOfGames(),
			ClientsWaiting:   cfg.Stats.WaitingClients(),
			CompletedMatches: completed,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			cfg.Logger.Error("failed to encode stats", slog.String("error", err.Error()))
		}
	}).Methods(http.MethodGet)

	return r
}
