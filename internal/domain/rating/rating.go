// Package rating implements the post-match bookkeeping: fixed-magnitude
// rating updates, win/loss/streak counters, and whole-pool rank
// recomputation, all inside one store transaction.
package rating

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/leduyquang2003/badminton-team-selector/internal/adapters/repository"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
)

// Default rating parameters.
//
// The update is deliberately a fixed-magnitude policy: the winner side gains
// K and the loser side loses K regardless of the rating gap. This is not
// probability-weighted ELO; rank stability downstream assumes the fixed-K
// behavior.
const (
	defaultK             = 16
	defaultMinRating     = 100
	defaultMaxRating     = 3000
	defaultInitialRating = 1200
	defaultFormWindow    = 10
)

// Delta reports one participant's rating movement for a match.
type Delta struct {
	PlayerID     string `json:"player_id"`
	RatingBefore int    `json:"rating_before"`
	RatingAfter  int    `json:"rating_after"`
	Delta        int    `json:"delta"`
	Won          bool   `json:"won"`
}

// Result is the outcome of applying one match: the updated participant rows
// and their per-player deltas. Shapes are stable for JSON serialization by
// the caller.
type Result struct {
	MatchID   string         `json:"match_id"`
	WinnerIDs [2]string      `json:"winner_ids"`
	Players   []model.Player `json:"players"`
	Deltas    []Delta        `json:"deltas"`
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithK sets the fixed rating delta magnitude.
func WithK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.k = k
		}
	}
}

// WithRatingBounds sets the clamp range for every rating update.
func WithRatingBounds(minRating, maxRating int) Option {
	return func(e *Engine) {
		if minRating < maxRating {
			e.minRating = minRating
			e.maxRating = maxRating
		}
	}
}

// WithInitialRating sets the baseline assigned to new players.
func WithInitialRating(rating int) Option {
	return func(e *Engine) {
		if rating > 0 {
			e.initialRating = rating
		}
	}
}

// WithFormWindow bounds the recent-form window kept on each player row.
func WithFormWindow(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.formWindow = n
		}
	}
}

// WithClock injects the timestamp source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine applies match outcomes against a player record store.
type Engine struct {
	store repository.Store

	k             int
	minRating     int
	maxRating     int
	initialRating int
	formWindow    int
	now           func() time.Time
}

// New creates an Engine bound to a store.
func New(store repository.Store, opts ...Option) *Engine {
	e := &Engine{
		store:         store,
		k:             defaultK,
		minRating:     defaultMinRating,
		maxRating:     defaultMaxRating,
		initialRating: defaultInitialRating,
		formWindow:    defaultFormWindow,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// InitialRating returns the baseline rating for new players.
func (e *Engine) InitialRating() int {
	return e.initialRating
}

// NewPlayer builds a fresh player row with the engine's baseline rating and
// zeroed statistics.
func (e *Engine) NewPlayer(id, name, tier string) model.Player {
	return model.Player{
		ID:            id,
		Name:          name,
		Tier:          tier,
		CreatedAt:     e.now(),
		Rating:        e.initialRating,
		InitialRating: e.initialRating,
		PeakRating:    e.initialRating,
	}
}

// Apply validates the outcome, updates every participant's rating and
// statistics, appends their history records, and recomputes ranks over the
// whole pool. All of it runs inside one store transaction: a missing player
// aborts with nothing committed.
func (e *Engine) Apply(ctx context.Context, outcome model.MatchOutcome) (Result, error) {
	if err := outcome.Validate(); err != nil {
		return Result{}, fmt.Errorf("match %s: %w", outcome.MatchID, err)
	}

	playedAt := outcome.PlayedAt
	if playedAt.IsZero() {
		playedAt = e.now()
	}

	winners, losers := outcome.TeamB, outcome.TeamA
	winnerScore, loserScore := outcome.ScoreB, outcome.ScoreA
	if outcome.AWon() {
		winners, losers = outcome.TeamA, outcome.TeamB
		winnerScore, loserScore = outcome.ScoreA, outcome.ScoreB
	}

	res := Result{MatchID: outcome.MatchID, WinnerIDs: winners}

	err := e.store.Update(ctx, func(tx repository.Tx) error {
		for i, id := range winners {
			d, p, err := e.updateOne(tx, id, winners[1-i], losers, winnerScore, loserScore, true, outcome.MatchID, playedAt)
			if err != nil {
				return err
			}
			res.Deltas = append(res.Deltas, d)
			res.Players = append(res.Players, p)
		}
		for i, id := range losers {
			d, p, err := e.updateOne(tx, id, losers[1-i], winners, loserScore, winnerScore, false, outcome.MatchID, playedAt)
			if err != nil {
				return err
			}
			res.Deltas = append(res.Deltas, d)
			res.Players = append(res.Players, p)
		}

		recomputeRanks(tx)

		// Participants were re-saved with fresh ranks; report those rows.
		for i, p := range res.Players {
			updated, err := tx.Get(p.ID)
			if err != nil {
				return err
			}
			res.Players[i] = updated
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// RecomputeRanks reorders the whole pool without touching ratings. The
// rating engine does this after every match; the service also runs it when
// the pool itself changes.
func (e *Engine) RecomputeRanks(ctx context.Context) error {
	return e.store.Update(ctx, func(tx repository.Tx) error {
		recomputeRanks(tx)
		return nil
	})
}

// updateOne applies one participant's rating delta, statistics, streaks and
// history record inside the transaction.
func (e *Engine) updateOne(tx repository.Tx, id, partnerID string, opponents [2]string, scoreFor, scoreAgainst int, won bool, matchID string, playedAt time.Time) (Delta, model.Player, error) {
	p, err := tx.Get(id)
	if err != nil {
		return Delta{}, model.Player{}, err
	}

	before := p.Rating
	if won {
		p.Rating = clamp(p.Rating+e.k, e.minRating, e.maxRating)
		p.Wins++
		p.CurrentStreak++
		if p.CurrentStreak > p.LongestStreak {
			p.LongestStreak = p.CurrentStreak
		}
	} else {
		p.Rating = clamp(p.Rating-e.k, e.minRating, e.maxRating)
		p.Losses++
		p.CurrentStreak = 0
	}
	if p.Rating > p.PeakRating {
		p.PeakRating = p.Rating
	}
	p.TotalMatches++
	p.RecentForm = append(p.RecentForm, won)
	if len(p.RecentForm) > e.formWindow {
		p.RecentForm = p.RecentForm[len(p.RecentForm)-e.formWindow:]
	}

	tx.Save(p)
	tx.AppendHistory(model.MatchRecord{
		MatchID:      matchID,
		PlayerID:     id,
		PartnerID:    partnerID,
		OpponentIDs:  opponents,
		ScoreFor:     scoreFor,
		ScoreAgainst: scoreAgainst,
		Won:          won,
		RatingBefore: before,
		RatingAfter:  p.Rating,
		RatingDelta:  p.Rating - before,
		PlayedAt:     playedAt,
	})

	return Delta{
		PlayerID:     id,
		RatingBefore: before,
		RatingAfter:  p.Rating,
		Delta:        p.Rating - before,
		Won:          won,
	}, p, nil
}

// recomputeRanks sorts the whole pool by rating descending and assigns
// 1-based positions. The sort is stable over store insertion order, which
// is the deterministic tie-break for equal ratings. A player ranked for the
// first time gets a zero rank change.
func recomputeRanks(tx repository.Tx) {
	pool := tx.All()
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Rating > pool[j].Rating
	})
	for i, p := range pool {
		rank := i + 1
		if p.CurrentRank == 0 {
			p.PreviousRank = rank
		} else {
			p.PreviousRank = p.CurrentRank
		}
		p.CurrentRank = rank
		p.RankChange = p.PreviousRank - p.CurrentRank
		tx.Save(p)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
