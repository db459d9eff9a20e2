package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/moniker/internal/domain/model"
)

// SuggestDependencies defines the interface for suggestion processing.
type SuggestDependencies interface {
	Suggest(ctx context.Context, name string) (model.Suggestion, error)
}

// SuggestHandler handles suggestion requests.
type SuggestHandler struct {
	deps SuggestDependencies
}

// NewSuggestHandler creates a new suggest handler.
func NewSuggestHandler(deps SuggestDependencies) *SuggestHandler {
	return &SuggestHandler{deps: deps}
}

// suggestRequest mirrors the OpenAPI schema for POST /suggest.
type suggestRequest struct {
	Name string `json:"name"`
}

func (s suggestRequest) validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("missing name")
	}
	return nil
}

type suggestResponse struct {
	InputName            string   `json:"input_name"`
	ResolvedName         string   `json:"resolved_name"`
	RecommendedUsernames []string `json:"recommended_usernames"`
	Count                int      `json:"count"`
}

// HandlePostSuggest handles POST /suggest requests.
func (h *SuggestHandler) HandlePostSuggest(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_suggest"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	suggestion, err := h.deps.Suggest(r.Context(), req.Name)
	if err != nil {
		writeError(w, http.StatusBadGateway, "pipeline_error", WrapKind(op, ErrUpstream, err))
		return
	}
	writeJSON(w, http.StatusOK, suggestResponse{
		InputName:            suggestion.Input,
		ResolvedName:         suggestion.Resolved,
		RecommendedUsernames: suggestion.Usernames,
		Count:                len(suggestion.Usernames),
	})
}
