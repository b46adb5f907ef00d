// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/rating"
)

// MatchDependencies defines the interface for match recording.
type MatchDependencies interface {
	RecordMatch(ctx context.Context, outcome model.MatchOutcome) (rating.Result, error)
}

// MatchesHandler handles match result submissions.
type MatchesHandler struct {
	deps MatchDependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchDependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// matchRequest mirrors the POST /matches body. MatchID is optional; the
// service generates one when absent, but callers that retry should supply
// their own so replays are detected.
type matchRequest struct {
	MatchID  string    `json:"match_id"`
	TeamA    [2]string `json:"team_a"`
	TeamB    [2]string `json:"team_b"`
	ScoreA   int       `json:"score_a"`
	ScoreB   int       `json:"score_b"`
	PlayedAt string    `json:"played_at"`
}

func (m matchRequest) outcome() (model.MatchOutcome, error) {
	out := model.MatchOutcome{
		MatchID: m.MatchID,
		TeamA:   m.TeamA,
		TeamB:   m.TeamB,
		ScoreA:  m.ScoreA,
		ScoreB:  m.ScoreB,
	}
	if m.PlayedAt != "" {
		ts, err := time.Parse(time.RFC3339, m.PlayedAt)
		if err != nil {
			return model.MatchOutcome{}, err
		}
		out.PlayedAt = ts
	}
	return out, nil
}

// HandlePostMatch handles POST /matches requests.
func (h *MatchesHandler) HandlePostMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_match"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	outcome, err := req.outcome()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.RecordMatch(r.Context(), outcome)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
