package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/partition"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/rating"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/review"
	"github.com/leduyquang2003/badminton-team-selector/pkg/logger"
	"github.com/leduyquang2003/badminton-team-selector/pkg/metrics"
)

// Entry is one leaderboard row in rank order.
type Entry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	Name       string  `json:"name"`
	Tier       string  `json:"tier"`
	Rating     int     `json:"rating"`
	PeakRating int     `json:"peak_rating"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	WinRate    float64 `json:"win_rate"`
	Streak     int     `json:"streak"`
	RankChange int     `json:"rank_change"`
	Strength   float64 `json:"strength"`
}

// CreatePlayer registers a new player with the baseline rating and zeroed
// statistics, then refreshes ranks so the newcomer appears on the
// leaderboard immediately.
func (s *Service) CreatePlayer(ctx context.Context, name, tier string) (model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Player{}, fmt.Errorf("player name must not be empty")
	}
	if _, ok := s.tierSet.Lookup(tier); !ok {
		return model.Player{}, fmt.Errorf("unknown tier %q (want one of %s)", tier, strings.Join(s.tierSet.Names(), ", "))
	}

	p := s.engine.NewPlayer(uuid.NewString(), name, tier)
	if err := s.store.Create(ctx, p); err != nil {
		return model.Player{}, err
	}
	if err := s.engine.RecomputeRanks(ctx); err != nil {
		return model.Player{}, err
	}

	s.logger.Info(ctx, "player created",
		logger.String("id", p.ID),
		logger.String("name", p.Name),
		logger.String("tier", p.Tier),
	)
	return s.store.Get(ctx, p.ID)
}

// GetPlayer returns one player row.
func (s *Service) GetPlayer(ctx context.Context, id string) (model.Player, error) {
	return s.store.Get(ctx, id)
}

// ListPlayers returns the whole pool in insertion order.
func (s *Service) ListPlayers(ctx context.Context) ([]model.Player, error) {
	return s.store.List(ctx)
}

// PlayerHistory returns a player's match records, most recent first.
func (s *Service) PlayerHistory(ctx context.Context, id string, limit int) ([]model.MatchRecord, error) {
	return s.store.History(ctx, id, limit)
}

// SelectCandidates picks count players from the pool, prioritizing those
// with fewer recorded matches.
func (s *Service) SelectCandidates(ctx context.Context, count int) ([]model.Player, error) {
	pool, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	picked, err := s.policy.Select(pool, count)
	if err != nil {
		return nil, err
	}
	metrics.RecordSelectionRequest()
	return picked, nil
}

// PartitionTeams resolves the four player ids and returns the balanced
// 2v2 pairing.
func (s *Service) PartitionTeams(ctx context.Context, ids []string) (partition.Pairing, error) {
	if len(ids) != model.MatchPlayers {
		return partition.Pairing{}, fmt.Errorf("%w: need exactly %d players, have %d",
			model.ErrInsufficientPlayers, model.MatchPlayers, len(ids))
	}
	players := make([]model.Player, 0, len(ids))
	for _, id := range ids {
		p, err := s.store.Get(ctx, id)
		if err != nil {
			return partition.Pairing{}, err
		}
		players = append(players, p)
	}
	pairing, err := s.splitter.Split(players)
	if err != nil {
		return partition.Pairing{}, err
	}
	metrics.RecordPartitionRequest()
	metrics.RecordPartitionImbalance(pairing.Gap)
	return pairing, nil
}

// RecordMatch applies one match outcome: at most once per match id, all
// participant updates and the rank recomputation in a single transaction.
func (s *Service) RecordMatch(ctx context.Context, outcome model.MatchOutcome) (rating.Result, error) {
	if strings.TrimSpace(outcome.MatchID) == "" {
		outcome.MatchID = uuid.NewString()
	}

	if s.deduper.SeenAndRecord(ctx, outcome.MatchID) {
		metrics.RecordDuplicateMatch()
		return rating.Result{}, fmt.Errorf("%w: %s", model.ErrDuplicateMatch, outcome.MatchID)
	}

	start := time.Now()
	res, err := s.engine.Apply(ctx, outcome)
	if err != nil {
		// Let the caller retry a failed apply with the same id.
		s.deduper.Unrecord(ctx, outcome.MatchID)
		metrics.RecordRejectedMatch()
		return rating.Result{}, err
	}

	metrics.RecordMatchRecorded()
	metrics.RecordRatingUpdates(len(res.Deltas))
	metrics.RecordMatchApplyLatency(float64(time.Since(start).Milliseconds()))
	s.updatePoolGauges(ctx)

	s.logger.Info(ctx, "match recorded",
		logger.String("matchID", res.MatchID),
		logger.String("winnerA", res.WinnerIDs[0]),
		logger.String("winnerB", res.WinnerIDs[1]),
	)
	return res, nil
}

// NeedsReview runs the demotion advisory for one player.
func (s *Service) NeedsReview(ctx context.Context, id string) (review.Verdict, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return review.Verdict{}, err
	}
	return s.advisor.Check(p), nil
}

// Strength returns the blended strength score for a player snapshot.
func (s *Service) Strength(p model.Player) float64 {
	return s.model.Rate(p)
}

// TeamStrength returns the blended strength score for a team snapshot.
func (s *Service) TeamStrength(players []model.Player) float64 {
	return s.model.RateTeam(players)
}

// Leaderboard returns up to n rank-ordered entries.
func (s *Service) Leaderboard(ctx context.Context, n int) ([]Entry, error) {
	pool, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(pool))
	for _, p := range pool {
		entries = append(entries, Entry{
			Rank:       p.CurrentRank,
			PlayerID:   p.ID,
			Name:       p.Name,
			Tier:       p.Tier,
			Rating:     p.Rating,
			PeakRating: p.PeakRating,
			Wins:       p.Wins,
			Losses:     p.Losses,
			WinRate:    p.WinRate(),
			Streak:     p.CurrentStreak,
			RankChange: p.RankChange,
			Strength:   s.model.Rate(p),
		})
	}
	sortEntries(entries)
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}

// updatePoolGauges refreshes the pool-level metrics after a write.
func (s *Service) updatePoolGauges(ctx context.Context) {
	entries, err := s.Leaderboard(ctx, 1)
	if err != nil || len(entries) == 0 {
		return
	}
	metrics.UpdatePoolSize(s.store.Count(ctx))
	metrics.UpdateTopRating(entries[0].Rating)
}

// sortEntries orders rows by their recorded rank. Rank 0 (never ranked)
// sorts last.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Rank, entries[j].Rank
		if a == 0 {
			return false
		}
		if b == 0 {
			return true
		}
		return a < b
	})
}
