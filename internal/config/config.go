// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file, then environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// InitialRating is the baseline assigned to every new player.
	InitialRating int `koanf:"initial_rating"`

	// MinRating and MaxRating clamp every rating update.
	MinRating int `koanf:"min_rating"`
	MaxRating int `koanf:"max_rating"`

	// RatingK is the fixed magnitude applied to winners (+K) and losers (-K).
	RatingK int `koanf:"rating_k"`

	// TierWeight and FormWeight blend tier ordinal and win rate into a
	// strength score. They should sum to 1.
	TierWeight float64 `koanf:"tier_weight"`
	FormWeight float64 `koanf:"form_weight"`

	// Tiers is the ordered skill ladder, weakest first.
	Tiers []model.Tier `koanf:"tiers"`

	// ReviewMinGames is the sample size required before the demotion
	// advisory gives a verdict.
	ReviewMinGames int `koanf:"review_min_games"`

	// RecentFormWindow bounds the recent-form win rate window.
	RecentFormWindow int `koanf:"recent_form_window"`

	// DedupeSize bounds the match-id idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// MaxHistoryLimit caps GET /players/{id}/history?limit.
	MaxHistoryLimit int `koanf:"max_history_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		InitialRating:       1200,
		MinRating:           100,
		MaxRating:           3000,
		RatingK:             16,
		TierWeight:          0.6,
		FormWeight:          0.4,
		Tiers:               model.DefaultTiers(),
		ReviewMinGames:      10,
		RecentFormWindow:    10,
		DedupeSize:          50_000,
		MaxLeaderboardLimit: 100,
		MaxHistoryLimit:     200,
	}
}
