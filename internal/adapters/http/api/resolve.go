package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/moniker/internal/domain/match"
	"github.com/okian/moniker/internal/domain/model"
)

// ResolveDependencies defines the interface for name resolution.
type ResolveDependencies interface {
	Resolve(ctx context.Context, name string) (model.Match, error)
}

// ResolveHandler handles name resolution requests.
type ResolveHandler struct {
	deps ResolveDependencies
}

// NewResolveHandler creates a new resolve handler.
func NewResolveHandler(deps ResolveDependencies) *ResolveHandler {
	return &ResolveHandler{deps: deps}
}

type resolveResponse struct {
	InputName    string  `json:"input_name"`
	ResolvedName string  `json:"resolved_name"`
	Matched      string  `json:"matched"`
	Score        float64 `json:"score"`
	Column       string  `json:"column"`
}

// HandleGetResolve handles GET /resolve?name= requests.
func (h *ResolveHandler) HandleGetResolve(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_resolve"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing name")))
		return
	}

	m, err := h.deps.Resolve(r.Context(), name)
	if err != nil {
		if errors.Is(err, match.ErrNoMatch) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrUpstream, err))
		return
	}
	writeJSON(w, http.StatusOK, resolveResponse{
		InputName:    name,
		ResolvedName: m.English,
		Matched:      m.Text,
		Score:        m.Score,
		Column:       m.Column.String(),
	})
}
