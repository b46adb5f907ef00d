// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/leduyquang2003/badminton-team-selector/internal/domain/partition"
)

// TeamsDependencies defines the interface for team partitioning.
type TeamsDependencies interface {
	PartitionTeams(ctx context.Context, ids []string) (partition.Pairing, error)
}

// TeamsHandler handles team balancing requests.
type TeamsHandler struct {
	deps TeamsDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamsDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// teamsRequest mirrors the POST /teams body.
type teamsRequest struct {
	PlayerIDs []string `json:"player_ids"`
}

func (t teamsRequest) validate() error {
	for _, id := range t.PlayerIDs {
		if strings.TrimSpace(id) == "" {
			return NewKind("api.post_teams", ErrBadRequest)
		}
	}
	return nil
}

// HandlePostTeams handles POST /teams requests.
func (h *TeamsHandler) HandlePostTeams(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_teams"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req teamsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	pairing, err := h.deps.PartitionTeams(r.Context(), req.PlayerIDs)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, pairing)
}
