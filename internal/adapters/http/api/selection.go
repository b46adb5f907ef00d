// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
)

// SelectionDependencies defines the interface for candidate selection.
type SelectionDependencies interface {
	SelectCandidates(ctx context.Context, count int) ([]model.Player, error)
}

// SelectionHandler handles candidate selection requests.
type SelectionHandler struct {
	deps SelectionDependencies
}

// NewSelectionHandler creates a new selection handler.
func NewSelectionHandler(deps SelectionDependencies) *SelectionHandler {
	return &SelectionHandler{deps: deps}
}

// selectionRequest mirrors the POST /selection body. Count defaults to a
// full doubles match.
type selectionRequest struct {
	Count int `json:"count"`
}

// HandlePostSelection handles POST /selection requests.
func (h *SelectionHandler) HandlePostSelection(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_selection"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.Count == 0 {
		req.Count = model.MatchPlayers
	}
	if req.Count < 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	players, err := h.deps.SelectCandidates(r.Context(), req.Count)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}
