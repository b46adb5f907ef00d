package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if BTS_CONFIG is set
//  3. env (prefix BTS_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("BTS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: BTS_ADDR, BTS_RATING_K, ...
	// Map env keys like BTS_RATING_K -> rating_k (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("BTS_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "bts_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the engine cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MinRating >= c.MaxRating:
		return fmt.Errorf("%w: min_rating must be below max_rating", ErrInvalidConfig)
	case c.InitialRating < c.MinRating || c.InitialRating > c.MaxRating:
		return fmt.Errorf("%w: initial_rating outside [min_rating, max_rating]", ErrInvalidConfig)
	case c.RatingK <= 0:
		return fmt.Errorf("%w: rating_k must be positive", ErrInvalidConfig)
	case c.TierWeight < 0 || c.FormWeight < 0:
		return fmt.Errorf("%w: strength weights must not be negative", ErrInvalidConfig)
	case len(c.Tiers) == 0:
		return fmt.Errorf("%w: at least one tier is required", ErrInvalidConfig)
	case c.RecentFormWindow <= 0:
		return fmt.Errorf("%w: recent_form_window must be positive", ErrInvalidConfig)
	case c.ReviewMinGames <= 0:
		return fmt.Errorf("%w: review_min_games must be positive", ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(c.Tiers))
	prev := 0.0
	for i, t := range c.Tiers {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("%w: tier %d has no name", ErrInvalidConfig, i)
		}
		if _, dup := seen[t.Name]; dup {
			return fmt.Errorf("%w: duplicate tier %q", ErrInvalidConfig, t.Name)
		}
		seen[t.Name] = struct{}{}
		if t.Ordinal <= prev {
			return fmt.Errorf("%w: tier ordinals must be strictly increasing", ErrInvalidConfig)
		}
		prev = t.Ordinal
		if t.DemotionThreshold < 0 || t.DemotionThreshold > 1 {
			return fmt.Errorf("%w: tier %q demotion_threshold outside [0,1]", ErrInvalidConfig, t.Name)
		}
	}
	return nil
}
