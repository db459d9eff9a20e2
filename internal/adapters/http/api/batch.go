package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/moniker/internal/domain/model"
)

// BatchDependencies defines the interface for batch processing.
type BatchDependencies interface {
	EnqueueBatch(ctx context.Context, names []string) (batchID string, accepted int, ok bool)
	BatchResult(ctx context.Context, batchID string) (model.BatchStatus, bool)
}

// BatchHandler handles batch suggestion requests.
type BatchHandler struct {
	deps BatchDependencies
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(deps BatchDependencies) *BatchHandler {
	return &BatchHandler{deps: deps}
}

// batchRequest mirrors the OpenAPI schema for POST /batch.
type batchRequest struct {
	Names []string `json:"names"`
}

// maxBatchNames caps how many names one batch request may carry.
const maxBatchNames = 100

func (b batchRequest) validate() error {
	if len(b.Names) == 0 {
		return errors.New("missing names")
	}
	if len(b.Names) > maxBatchNames {
		return errors.New("too many names in batch")
	}
	for _, n := range b.Names {
		if strings.TrimSpace(n) == "" {
			return errors.New("blank name in batch")
		}
	}
	return nil
}

type batchAckResponse struct {
	BatchID  string `json:"batch_id"`
	Accepted int    `json:"accepted"`
}

// HandlePostBatch handles POST /batch requests.
func (h *BatchHandler) HandlePostBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	batchID, accepted, ok := h.deps.EnqueueBatch(r.Context(), req.Names)
	if !ok {
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, batchAckResponse{BatchID: batchID, Accepted: accepted})
}

// HandleGetBatch handles GET /batch/{batch_id} requests.
func (h *BatchHandler) HandleGetBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_batch"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /batch/
	path := strings.TrimPrefix(r.URL.Path, "/batch/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	status, found := h.deps.BatchResult(r.Context(), path)
	if !found {
		writeError(w, http.StatusNotFound, "not_found", errors.New("unknown batch id"))
		return
	}
	writeJSON(w, http.StatusOK, status)
}
