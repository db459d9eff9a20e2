// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/moniker/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Suggest runs the full pipeline for one name.
	Suggest(ctx context.Context, name string) (model.Suggestion, error)

	// Resolve maps a raw name to its closest reference entry.
	Resolve(ctx context.Context, name string) (model.Match, error)

	// Claim records a username as taken. Returns true when the
	// username was newly recorded.
	Claim(ctx context.Context, username string) (bool, error)

	// EnqueueBatch queues names for async processing. Returns false
	// on backpressure; accepted counts names actually queued after
	// duplicate filtering.
	EnqueueBatch(ctx context.Context, names []string) (batchID string, accepted int, ok bool)

	// BatchResult reports the current state of a batch.
	BatchResult(ctx context.Context, batchID string) (model.BatchStatus, bool)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	suggestHandler *SuggestHandler
	resolveHandler *ResolveHandler
	claimHandler   *ClaimHandler
	batchHandler   *BatchHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		suggestHandler: NewSuggestHandler(deps),
		resolveHandler: NewResolveHandler(deps),
		claimHandler:   NewClaimHandler(deps),
		batchHandler:   NewBatchHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/suggest", MetricsMiddleware(s.suggestHandler.HandlePostSuggest, "suggest"))
	mux.HandleFunc("/resolve", MetricsMiddleware(s.resolveHandler.HandleGetResolve, "resolve"))
	mux.HandleFunc("/claim", MetricsMiddleware(s.claimHandler.HandlePostClaim, "claim"))
	mux.HandleFunc("/batch", MetricsMiddleware(s.batchHandler.HandlePostBatch, "batch"))
	mux.HandleFunc("/batch/", MetricsMiddleware(s.batchHandler.HandleGetBatch, "batch_status"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
