// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leduyquang2003/badminton-team-selector/internal/app"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/partition"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/rating"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/review"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CreatePlayer(ctx context.Context, name, tier string) (model.Player, error)
	GetPlayer(ctx context.Context, id string) (model.Player, error)
	ListPlayers(ctx context.Context) ([]model.Player, error)
	PlayerHistory(ctx context.Context, id string, limit int) ([]model.MatchRecord, error)
	SelectCandidates(ctx context.Context, count int) ([]model.Player, error)
	PartitionTeams(ctx context.Context, ids []string) (partition.Pairing, error)
	RecordMatch(ctx context.Context, outcome model.MatchOutcome) (rating.Result, error)
	NeedsReview(ctx context.Context, id string) (review.Verdict, error)
	Leaderboard(ctx context.Context, n int) ([]app.Entry, error)
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = app.Entry

// Limits caps the variable-size read endpoints.
type Limits struct {
	MaxLeaderboard int
	MaxHistory     int
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	playersHandler     *PlayersHandler
	selectionHandler   *SelectionHandler
	teamsHandler       *TeamsHandler
	matchesHandler     *MatchesHandler
	leaderboardHandler *LeaderboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, limits Limits) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		playersHandler:     NewPlayersHandler(deps, limits.MaxHistory),
		selectionHandler:   NewSelectionHandler(deps),
		teamsHandler:       NewTeamsHandler(deps),
		matchesHandler:     NewMatchesHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, limits.MaxLeaderboard),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandlePlayers, "players"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.playersHandler.HandlePlayerSubtree, "player"))
	mux.HandleFunc("/selection", MetricsMiddleware(s.selectionHandler.HandlePostSelection, "selection"))
	mux.HandleFunc("/teams", MetricsMiddleware(s.teamsHandler.HandlePostTeams, "teams"))
	mux.HandleFunc("/matches", MetricsMiddleware(s.matchesHandler.HandlePostMatch, "matches"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
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

// writeDomainError maps the shared error taxonomy onto HTTP statuses.
// Anything unmatched is treated as an opaque storage-layer failure.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		writeError(w, http.StatusNotFound, "player_not_found", Wrap(op, err))
	case errors.Is(err, model.ErrInsufficientPlayers):
		writeError(w, http.StatusConflict, "insufficient_players", Wrap(op, err))
	case errors.Is(err, model.ErrInvalidOutcome):
		writeError(w, http.StatusUnprocessableEntity, "invalid_outcome", Wrap(op, err))
	case errors.Is(err, model.ErrDuplicateMatch):
		writeError(w, http.StatusConflict, "duplicate_match", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
