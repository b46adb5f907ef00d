// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/review"
)

// PlayerDependencies defines the interface for player operations.
type PlayerDependencies interface {
	CreatePlayer(ctx context.Context, name, tier string) (model.Player, error)
	GetPlayer(ctx context.Context, id string) (model.Player, error)
	ListPlayers(ctx context.Context) ([]model.Player, error)
	PlayerHistory(ctx context.Context, id string, limit int) ([]model.MatchRecord, error)
	NeedsReview(ctx context.Context, id string) (review.Verdict, error)
}

// PlayersHandler handles player CRUD and per-player read requests.
type PlayersHandler struct {
	deps       PlayerDependencies
	maxHistory int
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayerDependencies, maxHistory int) *PlayersHandler {
	return &PlayersHandler{deps: deps, maxHistory: maxHistory}
}

// createPlayerRequest mirrors the POST /players body.
type createPlayerRequest struct {
	Name string `json:"name"`
	Tier string `json:"tier"`
}

func (r createPlayerRequest) validate() error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return NewKind("api.create_player", ErrBadRequest)
	case strings.TrimSpace(r.Tier) == "":
		return NewKind("api.create_player", ErrBadRequest)
	}
	return nil
}

// HandlePlayers handles POST /players and GET /players requests.
func (h *PlayersHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	const op = "api.players"
	switch r.Method {
	case http.MethodPost:
		var req createPlayerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		p, err := h.deps.CreatePlayer(r.Context(), req.Name, req.Tier)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeJSON(w, http.StatusCreated, p)
	case http.MethodGet:
		players, err := h.deps.ListPlayers(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, players)
	default:
		http.NotFound(w, r)
	}
}

// HandlePlayerSubtree handles GET /players/{id}, GET /players/{id}/history
// and GET /players/{id}/review requests.
func (h *PlayersHandler) HandlePlayerSubtree(w http.ResponseWriter, r *http.Request) {
	const op = "api.player"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/players/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch sub {
	case "":
		p, err := h.deps.GetPlayer(r.Context(), id)
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case "history":
		limit := h.maxHistory
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > h.maxHistory {
				writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
				return
			}
			limit = n
		}
		records, err := h.deps.PlayerHistory(r.Context(), id, limit)
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	case "review":
		verdict, err := h.deps.NeedsReview(r.Context(), id)
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, verdict)
	default:
		http.NotFound(w, r)
	}
}
