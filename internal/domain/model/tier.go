package model

// Tier is an ordered skill category. The ladder is a configuration point;
// ordinals feed the strength model and thresholds feed the demotion advisory.
type Tier struct {
	// Name identifies the tier, e.g. "beginner".
	Name string `json:"name" koanf:"name"`

	// Ordinal positions the tier on the strength scale. Higher is stronger.
	Ordinal float64 `json:"ordinal" koanf:"ordinal"`

	// DemotionThreshold is the win rate below which a player with enough
	// recorded matches is flagged for tier review.
	DemotionThreshold float64 `json:"demotion_threshold" koanf:"demotion_threshold"`
}

// DefaultTiers returns the default four-step ladder.
func DefaultTiers() []Tier {
	return []Tier{
		{Name: "beginner", Ordinal: 1.0, DemotionThreshold: 0.40},
		{Name: "intermediate", Ordinal: 2.0, DemotionThreshold: 0.45},
		{Name: "advanced", Ordinal: 2.5, DemotionThreshold: 0.48},
		{Name: "pro", Ordinal: 3.0, DemotionThreshold: 0.50},
	}
}

// TierSet provides lookup over an ordered ladder of tiers.
type TierSet struct {
	tiers  []Tier
	byName map[string]Tier
	scale  float64
}

// NewTierSet builds a TierSet from an ordered ladder. The highest ordinal
// becomes the scale used to map win rates onto the ordinal axis.
func NewTierSet(tiers []Tier) *TierSet {
	ts := &TierSet{
		tiers:  make([]Tier, len(tiers)),
		byName: make(map[string]Tier, len(tiers)),
	}
	copy(ts.tiers, tiers)
	for _, t := range tiers {
		ts.byName[t.Name] = t
		if t.Ordinal > ts.scale {
			ts.scale = t.Ordinal
		}
	}
	return ts
}

// Lookup returns the tier with the given name.
func (ts *TierSet) Lookup(name string) (Tier, bool) {
	t, ok := ts.byName[name]
	return t, ok
}

// Ordinal returns the ordinal for a tier name, or 0 for an unknown tier.
func (ts *TierSet) Ordinal(name string) float64 {
	return ts.byName[name].Ordinal
}

// Scale returns the highest configured ordinal.
func (ts *TierSet) Scale() float64 {
	return ts.scale
}

// Names returns tier names in ladder order.
func (ts *TierSet) Names() []string {
	names := make([]string, len(ts.tiers))
	for i, t := range ts.tiers {
		names[i] = t.Name
	}
	return names
}
