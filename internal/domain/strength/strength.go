// Package strength converts a player's skill tier and rolling win rate into
// a single comparable strength score used for team balancing.
package strength

import (
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
)

// Default blend weights. These are policy constants, not derived values:
// tier dominates, recent form adjusts.
const (
	defaultTierWeight = 0.6
	defaultFormWeight = 0.4
)

// Option applies a configuration option to the Model.
type Option func(*Model)

// WithWeights overrides the tier/form blend weights.
func WithWeights(tierWeight, formWeight float64) Option {
	return func(m *Model) {
		if tierWeight >= 0 && formWeight >= 0 {
			m.tierWeight = tierWeight
			m.formWeight = formWeight
		}
	}
}

// WithTierSet sets the ladder used to resolve tier ordinals.
func WithTierSet(ts *model.TierSet) Option {
	return func(m *Model) {
		if ts != nil {
			m.tiers = ts
		}
	}
}

// Model is a deterministic, pure scorer over tier and win rate. It never
// mutates the players it reads.
type Model struct {
	tiers      *model.TierSet
	tierWeight float64
	formWeight float64
}

// New creates a Model with the default ladder and blend weights.
func New(opts ...Option) *Model {
	m := &Model{
		tiers:      model.NewTierSet(model.DefaultTiers()),
		tierWeight: defaultTierWeight,
		formWeight: defaultFormWeight,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Rate returns the blended strength score for a single player. The win rate
// is scaled onto the ordinal axis so both inputs share a range.
func (m *Model) Rate(p model.Player) float64 {
	return m.blend(m.tiers.Ordinal(p.Tier), p.WinRate())
}

// RateTeam returns the strength of a whole team. The team's average ordinal
// and average win rate are blended the same way as for a single player
// rather than averaging member strengths, so the form component is not
// double-weighted.
func (m *Model) RateTeam(players []model.Player) float64 {
	if len(players) == 0 {
		// Defensive only: a committed team always has members.
		return 0
	}
	var ordinals, rates float64
	for _, p := range players {
		ordinals += m.tiers.Ordinal(p.Tier)
		rates += p.WinRate()
	}
	n := float64(len(players))
	return m.blend(ordinals/n, rates/n)
}

// TeamWinRate returns the team's aggregate rolling win rate.
func (m *Model) TeamWinRate(players []model.Player) float64 {
	if len(players) == 0 {
		return 0
	}
	var rates float64
	for _, p := range players {
		rates += p.WinRate()
	}
	return rates / float64(len(players))
}

func (m *Model) blend(ordinal, winRate float64) float64 {
	return m.tierWeight*ordinal + m.formWeight*winRate*m.tiers.Scale()
}
