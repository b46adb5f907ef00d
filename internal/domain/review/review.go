// Package review implements the demotion advisory: a read-only check
// flagging players whose win rate has fallen below their tier's threshold.
// It never changes a tier; acting on the flag is somebody else's call.
package review

import (
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
)

// defaultMinGames is the sample size required before a verdict is given.
const defaultMinGames = 10

// Option applies a configuration option to the Advisor.
type Option func(*Advisor)

// WithMinGames sets the minimum recorded matches before a verdict.
func WithMinGames(n int) Option {
	return func(a *Advisor) {
		if n > 0 {
			a.minGames = n
		}
	}
}

// WithTierSet sets the ladder providing per-tier demotion thresholds.
func WithTierSet(ts *model.TierSet) Option {
	return func(a *Advisor) {
		if ts != nil {
			a.tiers = ts
		}
	}
}

// Verdict explains one advisory check.
type Verdict struct {
	PlayerID     string  `json:"player_id"`
	NeedsReview  bool    `json:"needs_review"`
	WinRate      float64 `json:"win_rate"`
	Threshold    float64 `json:"threshold"`
	TotalMatches int     `json:"total_matches"`
	MinGames     int     `json:"min_games"`
}

// Advisor evaluates players against their tier thresholds.
type Advisor struct {
	tiers    *model.TierSet
	minGames int
}

// New creates an Advisor with the default ladder and sample size.
func New(opts ...Option) *Advisor {
	a := &Advisor{
		tiers:    model.NewTierSet(model.DefaultTiers()),
		minGames: defaultMinGames,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// NeedsReview reports whether the player's win rate sits below their tier's
// demotion threshold. Always false below the minimum sample size.
func (a *Advisor) NeedsReview(p model.Player) bool {
	return a.Check(p).NeedsReview
}

// Check returns the full verdict, including the threshold that applied.
func (a *Advisor) Check(p model.Player) Verdict {
	v := Verdict{
		PlayerID:     p.ID,
		WinRate:      p.WinRate(),
		TotalMatches: p.TotalMatches,
		MinGames:     a.minGames,
	}
	tier, ok := a.tiers.Lookup(p.Tier)
	if !ok {
		return v
	}
	v.Threshold = tier.DemotionThreshold
	if p.TotalMatches < a.minGames {
		return v
	}
	v.NeedsReview = v.WinRate < tier.DemotionThreshold
	return v
}
