package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// ClaimDependencies defines the interface for claiming usernames.
type ClaimDependencies interface {
	Claim(ctx context.Context, username string) (bool, error)
}

// ClaimHandler handles username claim requests.
type ClaimHandler struct {
	deps ClaimDependencies
}

// NewClaimHandler creates a new claim handler.
func NewClaimHandler(deps ClaimDependencies) *ClaimHandler {
	return &ClaimHandler{deps: deps}
}

// claimRequest mirrors the OpenAPI schema for POST /claim.
type claimRequest struct {
	Username string `json:"username"`
}

func (c claimRequest) validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return errors.New("missing username")
	}
	return nil
}

type claimResponse struct {
	Username string `json:"username"`
	Created  bool   `json:"created"`
}

// HandlePostClaim handles POST /claim requests. Returns 201 when the
// username was newly recorded, 200 when it was already taken.
func (h *ClaimHandler) HandlePostClaim(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_claim"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	created, err := h.deps.Claim(r.Context(), req.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrUpstream, err))
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, claimResponse{Username: strings.ToLower(strings.TrimSpace(req.Username)), Created: created})
}
