// Package selection implements the fairness-aware player rotation policy:
// players with fewer recorded matches are picked first so that playing time
// evens out over a season.
package selection

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
)

// Option applies a configuration option to the Policy.
type Option func(*Policy)

// WithRand injects the random source used for tie-breaking, so tests can
// supply a seeded source and assert exact outcomes.
func WithRand(rng *rand.Rand) Option {
	return func(p *Policy) {
		if rng != nil {
			p.rng = rng
		}
	}
}

// Policy selects the next participants from the pool. It never mutates the
// pool it reads.
type Policy struct {
	rng *rand.Rand
}

// New creates a Policy. Without WithRand it seeds from the wall clock.
func New(opts ...Option) *Policy {
	p := &Policy{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // tie-break shuffle, not security-sensitive
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Select returns exactly count players, ordered ascending by total matches
// played. Ties are broken by an unbiased shuffle rather than by name or id
// order, to avoid favoring any player systematically.
func (p *Policy) Select(pool []model.Player, count int) ([]model.Player, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: requested %d", model.ErrInsufficientPlayers, count)
	}
	if len(pool) < count {
		return nil, fmt.Errorf("%w: need at least %d players, have %d", model.ErrInsufficientPlayers, count, len(pool))
	}

	candidates := make([]model.Player, len(pool))
	copy(candidates, pool)

	// Shuffle first, then stable-sort on games played. Equal-count players
	// keep their shuffled order, which is the randomized tie-break.
	p.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].TotalMatches < candidates[j].TotalMatches
	})

	return candidates[:count], nil
}
